package dataprocessing

import (
	"cmp"
	"path/filepath"
	"slices"

	"yieldboard/pkg/contracts/domain"
)

// Summarize builds the filter metadata for records loaded from file. Only the
// base name of file is reported.
func Summarize(file string, records []domain.Record) domain.Metadata {
	var (
		companies      = newDistinct[string]()
		tracks         = newDistinct[string]()
		categories     = newDistinct[string]()
		savingTypes    = newDistinct[string]()
		fundTypes      = newDistinct[string]()
		trackTypes     = newDistinct[string]()
		liquidityTypes = newDistinct[string]()
		years          = newDistinct[int64]()
		quarters       = newDistinct[int64]()
	)

	for _, r := range records {
		companies.add(r.CompanyShort)
		tracks.add(r.TrackName)
		categories.add(r.Category)
		savingTypes.add(r.SavingType)
		fundTypes.add(r.FundType)
		trackTypes.add(r.TrackType)
		liquidityTypes.add(r.Liquidity)
		years.add(r.Year)
		quarters.add(r.Quarter)
	}

	meta := domain.Metadata{
		File:           filepath.Base(file),
		Companies:      companies.sorted(),
		Tracks:         tracks.sorted(),
		Categories:     categories.sorted(),
		SavingTypes:    savingTypes.sorted(),
		FundTypes:      fundTypes.sorted(),
		TrackTypes:     trackTypes.sorted(),
		LiquidityTypes: liquidityTypes.sorted(),
		Years:          years.sorted(),
		Quarters:       quarters.sorted(),
		TotalRows:      len(records),
	}
	if n := len(meta.Years); n > 0 {
		meta.MinYear = domain.Int64Ptr(meta.Years[0])
		meta.MaxYear = domain.Int64Ptr(meta.Years[n-1])
	}
	return meta
}

// distinct collects the set of non-nil values of one column.
type distinct[T cmp.Ordered] map[T]struct{}

func newDistinct[T cmp.Ordered]() distinct[T] { return make(distinct[T]) }

func (d distinct[T]) add(v *T) {
	if v != nil {
		d[*v] = struct{}{}
	}
}

// sorted returns the values ascending; never nil so it encodes as [].
func (d distinct[T]) sorted() []T {
	out := make([]T, 0, len(d))
	for v := range d {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
