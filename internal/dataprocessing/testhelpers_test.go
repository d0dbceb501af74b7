package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fullHeader is a header carrying every required column plus track type.
var fullHeader = []string{
	ColCategory, ColTrackID, ColTrackName, ColCompany, ColCompanyShort,
	ColSavingType, ColFundType, ColTrackType, ColCompanyID,
	ColYear, ColQuarter, ColContribution, ColWeight, ColYield,
}

// csvRow builds a CSV line for fullHeader from column/value pairs; unspecified
// columns are left empty.
func csvRow(values map[string]string) string {
	cells := make([]string, len(fullHeader))
	for i, col := range fullHeader {
		cells[i] = quoteCell(values[col])
	}
	return strings.Join(cells, ",")
}

func quoteCell(s string) string {
	if strings.ContainsAny(s, "\",\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func csvContent(header []string, rows ...string) string {
	lines := append([]string{strings.Join(header, ",")}, rows...)
	return strings.Join(lines, "\n") + "\n"
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func without(header []string, drop ...string) []string {
	out := make([]string, 0, len(header))
	for _, h := range header {
		keep := true
		for _, d := range drop {
			if h == d {
				keep = false
			}
		}
		if keep {
			out = append(out, h)
		}
	}
	return out
}
