// Package repository defines the standings store interface and errors.
package repository

import (
	"context"
	"time"

	league "github.com/okian/chalk/internal/domain/league"
	types "github.com/okian/chalk/internal/domain/types"
)

// Summary describes the currently published standings.
type Summary struct {
	PublishedAt time.Time          `json:"published_at"`
	Diagnostics league.Diagnostics `json:"diagnostics"`
}

// Store provides read access to published standings and accepts newly
// built tables.
type Store interface {
	// Publish replaces the visible standings with a built table.
	// Readers in flight keep the snapshot they started with.
	Publish(ctx context.Context, table *league.Table)

	// Divisions returns the display enumeration of divisions.
	Divisions(ctx context.Context) []string

	// Leaderboard returns the ranked entries for one division, best
	// rank first. limit 0 means all rows, limit n>0 the first n.
	// Returns ErrUnknownDivision for an unrecognized division label,
	// ErrInvalidLimit for a negative limit, ErrNoStandings before the
	// first publish.
	Leaderboard(ctx context.Context, division string, limit int) ([]types.Entry, error)

	// Lifter returns a lifter's entry in every division it holds one,
	// in display order. The match ignores case. Returns
	// ErrLifterNotFound when the name holds no entry.
	Lifter(ctx context.Context, name string) ([]types.Entry, error)

	// Summary returns publish-time metadata about the standings.
	Summary(ctx context.Context) (Summary, error)

	// Count returns the number of ranked rows across all divisions,
	// zero before the first publish.
	Count(ctx context.Context) int
}
