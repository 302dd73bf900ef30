package standings

import (
	"fmt"
	"sort"

	division "github.com/okian/chalk/internal/domain/division"
)

// RankDivisions partitions aggregated rows by division and ranks each
// partition independently. Within a division rows are ordered by total
// DOTS descending, then name ascending, then sex, so exact ties come
// back in a reproducible order.
//
// Ranks follow the minimum convention: every row in a tied block shares
// the rank of the block's best position, and the next distinct total
// takes its position-based rank. Totals 300, 250, 250, 200 rank
// 1, 2, 2, 4.
//
// A row without a division is a programming error in the caller.
func RankDivisions(rows []Row) map[division.Division][]Row {
	byDivision := make(map[division.Division][]Row)
	for _, row := range rows {
		if row.Division == "" {
			panic(fmt.Sprintf("standings: row for %q has no division", row.Name))
		}
		byDivision[row.Division] = append(byDivision[row.Division], row)
	}

	for _, group := range byDivision {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Dots != group[j].Dots {
				return group[i].Dots > group[j].Dots
			}
			if group[i].Name != group[j].Name {
				return group[i].Name < group[j].Name
			}
			return group[i].Sex < group[j].Sex
		})
		assignRanks(group)
	}
	return byDivision
}

// assignRanks walks rows already sorted by DOTS descending and gives
// every row in a tied block the block's starting position.
func assignRanks(rows []Row) {
	for i := 0; i < len(rows); {
		j := i
		for ; j < len(rows) && rows[j].Dots == rows[i].Dots; j++ {
			rows[j].Rank = i + 1
		}
		i = j
	}
}
