// Package standings aggregates capped event results and ranks the
// totals within each division.
package standings

import (
	"fmt"

	division "github.com/okian/chalk/internal/domain/division"
	model "github.com/okian/chalk/internal/domain/model"
)

// Row is one lifter's aggregated standing within a division.
type Row struct {
	Name        string
	Sex         string
	Division    division.Division
	Dots        float64
	Appearances int
	Rank        int
}

// groupKey identifies one aggregation group.
type groupKey struct {
	name string
	sex  string
	div  division.Division
}

// Aggregate sums DOTS per (Name, Sex, Division) group and counts the
// appearances behind each total. The same name under two divisions
// stays two rows; the grouping key is never collapsed. Rows come back
// in first-encounter order of their groups, so output is deterministic
// for a given input order. Ranks are left unset.
//
// Every record must already carry a division; an empty one is a
// programming error in the caller.
func Aggregate(results []model.Result) []Row {
	rows := make([]Row, 0, len(results))
	index := make(map[groupKey]int, len(results))
	for _, r := range results {
		if r.Division == "" {
			panic(fmt.Sprintf("standings: record for %q has no division", r.Name))
		}
		key := groupKey{name: r.Name, sex: r.Sex, div: r.Division}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, Row{Name: r.Name, Sex: r.Sex, Division: r.Division})
		}
		rows[i].Dots += r.Dots
		rows[i].Appearances++
	}
	return rows
}
