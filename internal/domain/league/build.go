// Package league composes classification, appearance limiting,
// aggregation and ranking into the league table pipeline.
package league

import (
	"context"
	"fmt"
	"sort"

	appearance "github.com/okian/chalk/internal/domain/appearance"
	division "github.com/okian/chalk/internal/domain/division"
	model "github.com/okian/chalk/internal/domain/model"
	standings "github.com/okian/chalk/internal/domain/standings"
)

// Table is the finished league standing: ranked rows per division plus
// the diagnostics gathered while building them.
type Table struct {
	Divisions   map[division.Division][]standings.Row
	Diagnostics Diagnostics
}

// Diagnostics counts what the pipeline dropped or flagged on the way
// from records to ranks.
type Diagnostics struct {
	// InputRecords is the number of cleaned records handed to the pipeline.
	InputRecords int `json:"input_records"`
	// Unclassifiable counts records dropped for an unknown age.
	Unclassifiable int `json:"unclassifiable"`
	// Capped counts records dropped by the per-lifter appearance cap.
	Capped int `json:"capped"`
	// Rows is the number of ranked rows across all divisions.
	Rows int `json:"rows"`
	// AmbiguousNames lists names that ended up in more than one
	// division, sorted. Their rows stay separate per grouping key.
	AmbiguousNames []string `json:"ambiguous_names,omitempty"`
	// DivisionSizes maps each division present in the data to its row count.
	DivisionSizes map[division.Division]int `json:"division_sizes,omitempty"`
}

// Rows returns every ranked row for one division, best rank first.
func (t *Table) Rows(d division.Division) []standings.Row {
	return t.Divisions[d]
}

// Build runs the full pipeline over a cleaned record set: classify,
// drop unclassifiable records, cap appearances per lifter, aggregate
// and rank. The input slice is never mutated.
//
// An empty input returns ErrNoResults. A non-empty input where no
// record receives a division returns ErrNoQualifiers. Both come back
// instead of a table so callers never mistake either case for a league
// nobody entered. ctx is checked between stages.
func Build(ctx context.Context, results []model.Result, opts ...Option) (*Table, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline cancelled: %w", err)
	}

	// Classify. The sex value is normalized to its bucket here, so one
	// lifter recorded as both "M" and "Male" still aggregates into one
	// row. Records without a division never reach the later stages and
	// never consume appearance slots.
	classified := make([]model.Result, 0, len(results))
	unclassifiable := 0
	for _, r := range results {
		d, ok := division.Classify(r.Age, r.AgeKnown, r.Sex)
		if !ok {
			unclassifiable++
			continue
		}
		r.Division = d
		r.Sex = division.SexBucket(r.Sex)
		classified = append(classified, r)
	}
	if len(classified) == 0 {
		return nil, fmt.Errorf("%d records: %w", len(results), ErrNoQualifiers)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline cancelled: %w", err)
	}

	// Cap appearances per lifter. Names are processed in first-seen
	// order so the capped set is deterministic for a given input.
	byName := make(map[string][]model.Result, len(classified))
	names := make([]string, 0, len(classified))
	for _, r := range classified {
		if _, seen := byName[r.Name]; !seen {
			names = append(names, r.Name)
		}
		byName[r.Name] = append(byName[r.Name], r)
	}
	capped := make([]model.Result, 0, len(classified))
	droppedByCap := 0
	for _, name := range names {
		kept, dropped := appearance.Limit(byName[name], cfg.appearanceCap)
		capped = append(capped, kept...)
		droppedByCap += len(dropped)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline cancelled: %w", err)
	}

	rows := standings.Aggregate(capped)
	ranked := standings.RankDivisions(rows)

	return &Table{
		Divisions: ranked,
		Diagnostics: Diagnostics{
			InputRecords:   len(results),
			Unclassifiable: unclassifiable,
			Capped:         droppedByCap,
			Rows:           len(rows),
			AmbiguousNames: ambiguousNames(rows),
			DivisionSizes:  divisionSizes(ranked),
		},
	}, nil
}

// ambiguousNames returns the sorted names that hold rows in more than
// one division.
func ambiguousNames(rows []standings.Row) []string {
	seen := make(map[string]map[division.Division]struct{})
	for _, row := range rows {
		if seen[row.Name] == nil {
			seen[row.Name] = make(map[division.Division]struct{})
		}
		seen[row.Name][row.Division] = struct{}{}
	}
	var names []string
	for name, divs := range seen {
		if len(divs) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func divisionSizes(ranked map[division.Division][]standings.Row) map[division.Division]int {
	sizes := make(map[division.Division]int, len(ranked))
	for d, rows := range ranked {
		sizes[d] = len(rows)
	}
	return sizes
}
