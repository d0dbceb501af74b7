package dataprocessing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yieldboard/pkg/contracts/domain"
)

func TestSummarize(t *testing.T) {
	str := domain.StringPtr
	year := domain.Int64Ptr

	tests := []struct {
		name    string
		file    string
		records []domain.Record
		check   func(t *testing.T, meta domain.Metadata)
	}{
		{
			name:    "empty dataset",
			file:    "output/yields.csv",
			records: nil,
			check: func(t *testing.T, meta domain.Metadata) {
				assert.Equal(t, "yields.csv", meta.File)
				assert.Equal(t, 0, meta.TotalRows)
				assert.Nil(t, meta.MinYear)
				assert.Nil(t, meta.MaxYear)
				assert.NotNil(t, meta.Companies)
				assert.Empty(t, meta.Companies)
				assert.NotNil(t, meta.Years)
			},
		},
		{
			name: "distinct values are sorted",
			file: "/data/q.csv",
			records: []domain.Record{
				{CompanyShort: str("מגדל"), Category: str("מניות"), Year: year(2024), Quarter: year(2)},
				{CompanyShort: str("הראל"), Category: str("מניות"), Year: year(2022), Quarter: year(1)},
				{CompanyShort: str("מגדל"), Category: str(`נדל"ן`), Year: year(2023), Quarter: year(2)},
				{CompanyShort: nil, Year: nil},
			},
			check: func(t *testing.T, meta domain.Metadata) {
				assert.Equal(t, "q.csv", meta.File)
				assert.Equal(t, 4, meta.TotalRows)
				assert.Equal(t, []string{"הראל", "מגדל"}, meta.Companies)
				assert.Equal(t, []string{"מניות", `נדל"ן`}, meta.Categories)
				assert.Equal(t, []int64{2022, 2023, 2024}, meta.Years)
				assert.Equal(t, []int64{1, 2}, meta.Quarters)
				assert.Equal(t, year(2022), meta.MinYear)
				assert.Equal(t, year(2024), meta.MaxYear)
			},
		},
		{
			name: "no years",
			file: "a.csv",
			records: []domain.Record{
				{Category: str("מניות"), Liquidity: str("liquid")},
			},
			check: func(t *testing.T, meta domain.Metadata) {
				assert.Nil(t, meta.MinYear)
				assert.Nil(t, meta.MaxYear)
				assert.Equal(t, []string{"liquid"}, meta.LiquidityTypes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Summarize(tt.file, tt.records))
		})
	}
}

func TestSummarize_EmptyListsEncodeAsArrays(t *testing.T) {
	data, err := json.Marshal(Summarize("x.csv", nil))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"file": "x.csv",
		"companies": [],
		"tracks": [],
		"categories": [],
		"saving_types": [],
		"fund_types": [],
		"track_types": [],
		"liquidity_types": [],
		"years": [],
		"quarters": [],
		"min_year": null,
		"max_year": null,
		"total_rows": 0
	}`, string(data))
}

func TestSanitize(t *testing.T) {
	records := []domain.Record{
		{
			Contribution: domain.Float64Ptr(math.Inf(1)),
			Weight:       domain.Float64Ptr(math.NaN()),
			Yield:        domain.Float64Ptr(1.5),
		},
		{
			Yield: domain.Float64Ptr(math.Inf(-1)),
		},
	}

	replaced := Sanitize(records)

	assert.Equal(t, 3, replaced)
	assert.Nil(t, records[0].Contribution)
	assert.Nil(t, records[0].Weight)
	assert.Equal(t, domain.Float64Ptr(1.5), records[0].Yield)
	assert.Nil(t, records[1].Yield)
	assert.Equal(t, 0, Sanitize(records))
}
