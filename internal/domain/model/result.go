// Package model contains domain models passed between layers.
package model

import (
	"time"

	division "github.com/okian/chalk/internal/domain/division"
)

// Result is one lifter's row from a league event sheet, after ingestion
// cleaned it. Name and Dots are always present; ingestion drops rows
// without them before the pipeline ever sees them.
type Result struct {
	Name string  // lifter identity within the dataset
	Sex  string  // as ingested; the classify stage rewrites it to its bucket
	Age  float64 // age at the event; meaningful only when AgeKnown
	// AgeKnown reports whether Age carries a usable value. Records
	// without a usable age never receive a division.
	AgeKnown  bool
	Dots      float64   // DOTS score for the event
	EventDate time.Time // zero value means the date could not be parsed
	Meet      string    // venue label, optional
	Row       int       // 1-based source row, 0 for synthetic records
	// Division is empty on ingested records and set by the classify
	// stage. Downstream stages treat an empty value as a bug.
	Division division.Division
}

// DateKnown reports whether the record carries a usable event date.
// Records without one order after all dated records when capping
// appearances.
func (r Result) DateKnown() bool {
	return !r.EventDate.IsZero()
}

// Dataset is one immutable snapshot of the cleaned results file.
type Dataset struct {
	ID       string   // unique id per parsed content (uuid)
	Hash     string   // sha256 hex of the source bytes
	Path     string   // source file path, empty when parsed from a reader
	Records  []Result // cleaned rows in source order
	Skipped  SkipCounts
	LoadedAt time.Time
}

// SkipCounts tallies rows dropped during ingestion, by reason.
type SkipCounts struct {
	MissingName int // rows without a lifter name
	MissingDots int // rows without a parseable DOTS score
}

// Total returns the number of rows dropped during ingestion.
func (s SkipCounts) Total() int {
	return s.MissingName + s.MissingDots
}
