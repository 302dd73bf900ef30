package repository

import "errors"

// Sentinel kinds for standings lookups.
var (
	ErrNoStandings     = errors.New("no standings published")
	ErrUnknownDivision = errors.New("unknown division")
	ErrLifterNotFound  = errors.New("lifter not found")
	ErrInvalidLimit    = errors.New("invalid leaderboard limit")
)
