package dataprocessing

import (
	"math"

	"yieldboard/pkg/contracts/domain"
)

// Sanitize nulls every NaN or infinite float in records, in place, and
// returns how many values it replaced. After MapRecords there should be
// none; this is the last guard before serialization, which cannot encode
// them.
func Sanitize(records []domain.Record) int {
	replaced := 0
	for i := range records {
		for _, f := range []**float64{
			&records[i].Contribution,
			&records[i].Weight,
			&records[i].Yield,
		} {
			if *f != nil && (math.IsNaN(**f) || math.IsInf(**f, 0)) {
				*f = nil
				replaced++
			}
		}
	}
	return replaced
}
