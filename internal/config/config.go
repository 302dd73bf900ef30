// Package config resolves the runtime configuration of the standings
// service from defaults, an optional YAML file and environment
// variables.
package config

import (
	"fmt"

	"github.com/okian/chalk/internal/domain/appearance"
	"github.com/okian/chalk/internal/domain/division"
	"github.com/okian/chalk/internal/domain/league"
)

// Defaults applied before file and environment overrides.
const (
	DefaultLogLevel            = "info"
	DefaultAddr                = ":9080"
	DefaultResultsPath         = "results.csv"
	DefaultMaxLeaderboardLimit = 100
	DefaultWatchDebounceMS     = 500
)

// Config holds every runtime knob of the service. Fields map to
// lower_snake_case keys in the YAML file and to CHALK_* environment
// variables, e.g. AppearanceCap is appearance_cap and
// CHALK_APPEARANCE_CAP.
type Config struct {
	LogLevel            string   `koanf:"log_level"`
	Addr                string   `koanf:"addr"`
	ResultsPath         string   `koanf:"results_path"`
	AppearanceCap       int      `koanf:"appearance_cap"`
	MaxLeaderboardLimit int      `koanf:"max_leaderboard_limit"`
	Watch               bool     `koanf:"watch"`
	WatchDebounceMS     int      `koanf:"watch_debounce_ms"`
	DivisionOrder       []string `koanf:"division_order"`
	LeagueTitle         string   `koanf:"league_title"`
	LeagueDescription   string   `koanf:"league_description"`
	LeagueVenues        []string `koanf:"league_venues"`
	SeasonStart         string   `koanf:"season_start"`
	SeasonEnd           string   `koanf:"season_end"`
	CurrentResultsNote  string   `koanf:"current_results_note"`
}

// New returns a config populated with defaults. League copy starts
// from the standing league description so a bare deployment serves
// something sensible.
func New() *Config {
	info := league.DefaultInfo()
	order := division.Order()
	names := make([]string, len(order))
	for i, d := range order {
		names[i] = string(d)
	}
	return &Config{
		LogLevel:            DefaultLogLevel,
		Addr:                DefaultAddr,
		ResultsPath:         DefaultResultsPath,
		AppearanceCap:       appearance.DefaultCap,
		MaxLeaderboardLimit: DefaultMaxLeaderboardLimit,
		Watch:               true,
		WatchDebounceMS:     DefaultWatchDebounceMS,
		DivisionOrder:       names,
		LeagueTitle:         info.Title,
		LeagueDescription:   info.Description,
		LeagueVenues:        info.Venues,
		SeasonStart:         info.SeasonStart,
		SeasonEnd:           info.SeasonEnd,
		CurrentResultsNote:  info.ResultsNote,
	}
}

// Divisions parses DivisionOrder into canonical domain divisions.
// Names are matched case-insensitively; unknown or duplicate entries
// are rejected.
func (c *Config) Divisions() ([]division.Division, error) {
	order := make([]division.Division, 0, len(c.DivisionOrder))
	seen := make(map[division.Division]struct{}, len(c.DivisionOrder))
	for _, name := range c.DivisionOrder {
		d, ok := division.Parse(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown division %q in division_order", ErrInvalidConfig, name)
		}
		if _, dup := seen[d]; dup {
			return nil, fmt.Errorf("%w: duplicate division %q in division_order", ErrInvalidConfig, name)
		}
		seen[d] = struct{}{}
		order = append(order, d)
	}
	return order, nil
}

// LeagueInfo assembles the presentation copy from the configured
// fields. AppearanceCap always carries the effective cap so the
// published rules match what the pipeline enforces.
func (c *Config) LeagueInfo() league.Info {
	return league.Info{
		Title:         c.LeagueTitle,
		Description:   c.LeagueDescription,
		Venues:        c.LeagueVenues,
		SeasonStart:   c.SeasonStart,
		SeasonEnd:     c.SeasonEnd,
		AppearanceCap: c.AppearanceCap,
		ResultsNote:   c.CurrentResultsNote,
	}
}
