package ingest

import "time"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithNow sets the clock used to stamp LoadedAt on fresh parses.
func WithNow(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}
