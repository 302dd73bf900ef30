package service

import "errors"

// ErrNotStarted is returned when a rebuild is requested before Start
// has initialized the loader and the store.
var ErrNotStarted = errors.New("service not started")
