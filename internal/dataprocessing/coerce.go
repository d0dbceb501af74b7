package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"yieldboard/pkg/contracts/domain"
)

// ParseNullableFloat parses a numeric cell. Empty, unparsable, NaN and
// infinite values all yield nil.
func ParseNullableFloat(s string) *float64 {
	v, _ := parseFloatCell(s)
	return v
}

// ParseNullableInt parses a numeric cell and truncates it toward zero.
// Anything ParseNullableFloat rejects, and values outside the int64 range,
// yield nil.
func ParseNullableInt(s string) *int64 {
	v, _ := parseIntCell(s)
	return v
}

// parseFloatCell also reports whether a non-empty cell was turned into nil.
func parseFloatCell(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, true
	}
	return &v, false
}

func parseIntCell(s string) (*int64, bool) {
	f, coerced := parseFloatCell(s)
	if f == nil {
		return nil, coerced
	}
	t := math.Trunc(*f)
	// float64(math.MaxInt64) rounds up to 2^63, hence >=
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return nil, true
	}
	v := int64(t)
	return &v, false
}

// identifierColumn converts a column of identifiers. The column is numeric
// when every non-empty cell is a base-10 integer, textual otherwise.
func identifierColumn(cells []string) []domain.Identifier {
	if cells == nil {
		return nil
	}
	ids := make([]domain.Identifier, len(cells))
	numbers := make([]int64, len(cells))
	numeric := true
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			numeric = false
			break
		}
		numbers[i] = n
	}

	for i, cell := range cells {
		switch {
		case strings.TrimSpace(cell) == "":
			// null
		case numeric:
			ids[i] = domain.NumberIdentifier(numbers[i])
		default:
			ids[i] = domain.TextIdentifier(cell)
		}
	}
	return ids
}

// coercionStats counts what the mapper absorbed.
type coercionStats struct {
	nullCoercions     int
	quarterOutOfRange int
}

// MapRecords renames the source columns to the canonical schema and coerces
// numeric columns. Row order is preserved. The liquidity column must have
// been resolved beforehand.
func MapRecords(t *Table) []domain.Record {
	records, _ := mapRecords(t)
	return records
}

func mapRecords(t *Table) ([]domain.Record, coercionStats) {
	var stats coercionStats

	trackIDs := identifierColumn(t.Column(ColTrackID))
	companyIDs := identifierColumn(t.Column(ColCompanyID))

	text := func(row int, col string) *string {
		v, _ := t.Value(row, col)
		return cellPtr(v)
	}
	integer := func(row int, col string) *int64 {
		v, _ := t.Value(row, col)
		n, coerced := parseIntCell(v)
		if coerced {
			stats.nullCoercions++
		}
		return n
	}
	float := func(row int, col string) *float64 {
		v, _ := t.Value(row, col)
		f, coerced := parseFloatCell(v)
		if coerced {
			stats.nullCoercions++
		}
		return f
	}

	records := make([]domain.Record, t.Len())
	for i := range records {
		rec := domain.Record{
			Category:     text(i, ColCategory),
			TrackName:    text(i, ColTrackName),
			Company:      text(i, ColCompany),
			CompanyShort: text(i, ColCompanyShort),
			SavingType:   text(i, ColSavingType),
			FundType:     text(i, ColFundType),
			TrackType:    text(i, ColTrackType),
			Year:         integer(i, ColYear),
			Quarter:      integer(i, ColQuarter),
			Contribution: float(i, ColContribution),
			Weight:       float(i, ColWeight),
			Yield:        float(i, ColYield),
			Liquidity:    text(i, ColLiquidity),
		}
		if trackIDs != nil {
			rec.TrackID = trackIDs[i]
		}
		if companyIDs != nil {
			rec.CompanyID = companyIDs[i]
		}
		if q := rec.Quarter; q != nil && (*q < 1 || *q > 4) {
			stats.quarterOutOfRange++
		}
		records[i] = rec
	}
	return records, stats
}
