package watch

import "errors"

// Sentinel kinds for watcher setup.
var (
	ErrNilReloader = errors.New("reloader must not be nil")
	ErrEmptyPath   = errors.New("results path must not be empty")
)
