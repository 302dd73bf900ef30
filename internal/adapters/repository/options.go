package repository

import (
	"time"

	division "github.com/okian/chalk/internal/domain/division"
)

// Option applies a configuration option to the SnapStore.
type Option func(*SnapStore)

// WithDivisionOrder overrides the display enumeration of divisions.
// Empty input is ignored.
func WithDivisionOrder(order []division.Division) Option {
	return func(s *SnapStore) {
		if len(order) > 0 {
			s.order = append([]division.Division(nil), order...)
		}
	}
}

// WithNow sets the clock used to stamp publishes.
func WithNow(now func() time.Time) Option {
	return func(s *SnapStore) {
		if now != nil {
			s.now = now
		}
	}
}
