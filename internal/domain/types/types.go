// Package types contains common types shared between layers.
package types

// Entry represents one ranked leaderboard row.
type Entry struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Dots     float64 `json:"dots"`
	Division string  `json:"division"`
}
