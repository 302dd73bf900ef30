package ingest

import "errors"

// Sentinel kinds for ingestion failures.
var (
	// ErrEmptyFile reports a source with no header row at all.
	ErrEmptyFile = errors.New("results file is empty")
	// ErrMissingColumn reports a header without a required column.
	ErrMissingColumn = errors.New("required column missing")
	// ErrRead reports an unreadable source or malformed row.
	ErrRead = errors.New("results file unreadable")
)
