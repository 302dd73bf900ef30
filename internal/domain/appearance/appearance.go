// Package appearance caps how many event results count per lifter.
package appearance

import (
	"fmt"
	"sort"

	model "github.com/okian/chalk/internal/domain/model"
)

// DefaultCap is the number of appearances that count toward a lifter's
// league total.
const DefaultCap = 3

// Limit selects the appearances that count for a single lifter. The
// records are ordered chronologically, earliest first; records without
// a usable date order after every dated record so they are the first to
// be dropped when over the cap. Records sharing a date, and records all
// missing a date, keep their input order. The first cap records are
// kept, the remainder dropped.
//
// Limit never mutates the input slice. Re-limiting the kept slice
// returns it unchanged. A cap below 1 is a programming error.
func Limit(results []model.Result, cap int) (kept, dropped []model.Result) {
	if cap < 1 {
		panic(fmt.Sprintf("appearance: cap must be positive, got %d", cap))
	}
	if len(results) == 0 {
		return nil, nil
	}

	ordered := make([]model.Result, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.DateKnown() != b.DateKnown() {
			return a.DateKnown()
		}
		if !a.DateKnown() {
			return false
		}
		return a.EventDate.Before(b.EventDate)
	})

	if len(ordered) <= cap {
		return ordered, nil
	}
	return ordered[:cap], ordered[cap:]
}
