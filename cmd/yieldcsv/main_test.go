package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yieldboard/internal/shared/testutil"
	"yieldboard/pkg/contracts"
	api "yieldboard/pkg/contracts/api/v1"
	"yieldboard/pkg/contracts/domain"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	sample := testutil.WriteSampleYieldCSV(t, dir, "yields.csv")
	testutil.Touch(t, sample, time.Now().Add(-time.Hour))
	newer := testutil.WriteFile(t, dir, "newer.csv", testutil.YieldCSV(testutil.YieldHeader, testutil.SampleYieldRows[1]))
	broken := testutil.WriteFile(t, t.TempDir(), "broken.csv", "שנה\n2024\n")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantFile string
		wantRows int
		wantErr  string
	}{
		{"explicit file", []string{"-file", sample}, 0, "yields.csv", 2, ""},
		{"newest in dir", []string{"-dir", dir}, 0, filepath.Base(newer), 1, ""},
		{"missing file", []string{"-file", filepath.Join(dir, "nope.csv")}, 1, "", 0, "source file not found"},
		{"empty dir", []string{"-dir", t.TempDir()}, 1, "", 0, "source file not found"},
		{"missing columns", []string{"-file", broken}, 1, "", 0, "missing columns"},
		{"unknown flag", []string{"-bogus"}, 2, "", 0, ""},
		{"stray argument", []string{"-dir", dir, "extra"}, 2, "", 0, "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(tt.args, &stdout, &stderr)
			require.Equal(t, tt.wantCode, code, stderr.String())

			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), tt.wantErr)
			}
			if tt.wantCode != 0 {
				assert.Empty(t, stdout.String())
				return
			}

			var resp api.DataResponse
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
			assert.Equal(t, api.StatusOK, resp.Status)
			assert.Equal(t, tt.wantFile, resp.Meta.File)
			assert.Len(t, resp.Rows, tt.wantRows)
		})
	}
}

func TestRun_MetaOnly(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteSampleYieldCSV(t, dir, "yields.csv")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-dir", dir, "-meta"}, &stdout, &stderr))

	var meta domain.Metadata
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &meta))
	assert.Equal(t, 2, meta.TotalRows)
	assert.Equal(t, []int64{2023, 2024}, meta.Years)
	assert.ElementsMatch(t, []string{domain.LiquidityIlliquid, domain.LiquidityLiquid}, meta.LiquidityTypes)
	assert.NotContains(t, stdout.String(), `"rows"`)
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))

	out := strings.TrimSpace(stdout.String())
	assert.Equal(t, contracts.GetFullVersionString(), out)
	assert.Contains(t, out, "v"+contracts.Version)
	assert.Empty(t, stderr.String())
}

func TestRun_LogsCarryTraceID(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteSampleYieldCSV(t, dir, "yields.csv")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-dir", dir, "-log-level", "info"}, &stdout, &stderr))

	assert.Contains(t, stderr.String(), "pipeline completed")
	assert.Contains(t, stderr.String(), "trace_id=")
}
