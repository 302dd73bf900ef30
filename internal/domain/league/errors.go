package league

import "errors"

// Sentinel kinds for pipeline outcomes. Callers branch on these to
// tell an empty dataset apart from one where nothing qualified.
var (
	// ErrNoResults reports that the input set was empty.
	ErrNoResults = errors.New("no results in dataset")
	// ErrNoQualifiers reports that records exist but none could be
	// placed in a division.
	ErrNoQualifiers = errors.New("no classifiable results in dataset")
)
