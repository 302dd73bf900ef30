package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	division "github.com/okian/chalk/internal/domain/division"
	league "github.com/okian/chalk/internal/domain/league"
	types "github.com/okian/chalk/internal/domain/types"
	"github.com/okian/chalk/pkg/metrics"
)

// snapshot is one immutable published view of the standings.
type snapshot struct {
	entries     map[division.Division][]types.Entry
	byName      map[string][]types.Entry // lower-cased name -> entries in display order
	diag        league.Diagnostics
	publishedAt time.Time
	count       int
}

// SnapStore keeps the latest published standings behind an atomic
// pointer. Publish swaps in a fully built snapshot; readers never
// block and never observe a partial table.
type SnapStore struct {
	current atomic.Pointer[snapshot]
	order   []division.Division
	now     func() time.Time
}

var _ Store = (*SnapStore)(nil)

// NewSnapStore creates an empty store. Reads fail with ErrNoStandings
// until the first Publish.
func NewSnapStore(opts ...Option) *SnapStore {
	s := &SnapStore{
		order: division.Order(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish builds a snapshot from the table and swaps it in.
func (s *SnapStore) Publish(ctx context.Context, table *league.Table) {
	snap := &snapshot{
		entries:     make(map[division.Division][]types.Entry, len(table.Divisions)),
		byName:      make(map[string][]types.Entry),
		diag:        table.Diagnostics,
		publishedAt: s.now(),
	}
	for d, rows := range table.Divisions {
		entries := make([]types.Entry, len(rows))
		for i, row := range rows {
			entries[i] = types.Entry{
				Rank:     row.Rank,
				Name:     row.Name,
				Dots:     row.Dots,
				Division: string(d),
			}
		}
		snap.entries[d] = entries
		snap.count += len(entries)
	}
	// The name index follows display order so multi-division lifters
	// come back deterministically.
	for _, d := range s.divisionsInOrder(snap) {
		for _, e := range snap.entries[d] {
			key := strings.ToLower(e.Name)
			snap.byName[key] = append(snap.byName[key], e)
		}
	}

	s.current.Store(snap)

	metrics.UpdateLiftersTotal(snap.count)
	metrics.UpdateDivisionsTotal(len(snap.entries))
	metrics.UpdateUnclassifiableRecords(snap.diag.Unclassifiable)
	metrics.UpdateCappedRecords(snap.diag.Capped)
	metrics.UpdateAmbiguousLifters(len(snap.diag.AmbiguousNames))
}

// Divisions returns the display enumeration, independent of data.
func (s *SnapStore) Divisions(ctx context.Context) []string {
	out := make([]string, len(s.order))
	for i, d := range s.order {
		out[i] = string(d)
	}
	return out
}

// Leaderboard returns the ranked entries for one division.
func (s *SnapStore) Leaderboard(ctx context.Context, div string, limit int) ([]types.Entry, error) {
	if limit < 0 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	d, ok := division.Parse(div)
	if !ok {
		metrics.RecordErrorByComponent("repository", "unknown_division")
		return nil, fmt.Errorf("%w: %q", ErrUnknownDivision, div)
	}
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoStandings
	}

	entries := snap.entries[d]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	out := make([]types.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Lifter returns a lifter's entries across divisions.
func (s *SnapStore) Lifter(ctx context.Context, name string) ([]types.Entry, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoStandings
	}
	entries, ok := snap.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		metrics.RecordErrorByComponent("repository", "lifter_not_found")
		return nil, fmt.Errorf("%w: %q", ErrLifterNotFound, name)
	}
	out := make([]types.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Summary returns publish-time metadata about the standings.
func (s *SnapStore) Summary(ctx context.Context) (Summary, error) {
	snap := s.current.Load()
	if snap == nil {
		return Summary{}, ErrNoStandings
	}
	return Summary{PublishedAt: snap.publishedAt, Diagnostics: snap.diag}, nil
}

// Count returns the number of ranked rows across all divisions.
func (s *SnapStore) Count(ctx context.Context) int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return snap.count
}

// divisionsInOrder is the display order followed by any populated
// divisions it omits, sorted, so nothing published is unreachable.
func (s *SnapStore) divisionsInOrder(snap *snapshot) []division.Division {
	seen := make(map[division.Division]struct{}, len(s.order))
	out := make([]division.Division, 0, len(s.order)+len(snap.entries))
	for _, d := range s.order {
		seen[d] = struct{}{}
		out = append(out, d)
	}
	var extra []division.Division
	for d := range snap.entries {
		if _, ok := seen[d]; !ok {
			extra = append(extra, d)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
