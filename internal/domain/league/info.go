package league

import (
	appearance "github.com/okian/chalk/internal/domain/appearance"
)

// Info describes the league for presentation: title, rules copy,
// venues and the season window. Configuration may override any field.
type Info struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Venues        []string `json:"venues"`
	SeasonStart   string   `json:"season_start"`
	SeasonEnd     string   `json:"season_end"`
	AppearanceCap int      `json:"appearance_cap"`
	ResultsNote   string   `json:"results_note"`
}

// DefaultInfo returns the standing league copy.
func DefaultInfo() Info {
	return Info{
		Title: "WRPF UK Novice League",
		Description: "The WRPF UK Novice League highlights developing lifters and " +
			"provides a platform to gain experience in a supportive, competitive " +
			"setting. Eligibility is limited to those who have competed in two or " +
			"fewer events (this event can be your third). League placings are " +
			"calculated by adding each lifter's DOTS score from every Novice League " +
			"event they compete in, capped at a maximum of three events. At the end " +
			"of the WRPF UK competitive calendar, the top three lifters in each " +
			"division will receive prizes.",
		Venues: []string{
			"Nottingham Strong, Nottingham",
			"Raw Strength Gym, Warrington",
			"349 Barbell, Salisbury",
			"Iron Warehouse Gym, Great Yarmouth",
		},
		SeasonStart:   "October 1st",
		SeasonEnd:     "September 30th",
		AppearanceCap: appearance.DefaultCap,
		ResultsNote:   "19/10/25 - Raw Strength Novice, Warrington",
	}
}
