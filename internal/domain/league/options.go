package league

import (
	appearance "github.com/okian/chalk/internal/domain/appearance"
)

// Option applies a configuration option to a pipeline run.
type Option func(*settings)

// settings holds per-run pipeline configuration.
type settings struct {
	appearanceCap int
}

func defaultSettings() *settings {
	return &settings{
		appearanceCap: appearance.DefaultCap,
	}
}

// WithAppearanceCap overrides how many appearances count per lifter.
// Values below 1 are ignored.
func WithAppearanceCap(cap int) Option {
	return func(s *settings) {
		if cap > 0 {
			s.appearanceCap = cap
		}
	}
}
