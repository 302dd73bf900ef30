// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/chalk/internal/adapters/repository"
	"github.com/okian/chalk/internal/domain/league"
	"github.com/okian/chalk/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Divisions lists division names in display order.
	Divisions(ctx context.Context) []string

	// Leaderboard returns ranked rows for one division. limit zero
	// means the whole division.
	Leaderboard(ctx context.Context, division string, limit int) ([]Entry, error)

	// Lifter returns a lifter's entry in every division they appear in.
	Lifter(ctx context.Context, name string) ([]Entry, error)

	// Summary describes the currently published standings.
	Summary(ctx context.Context) (repository.Summary, error)

	// LeagueInfo returns the league metadata.
	LeagueInfo() league.Info

	// LastBuildError reports why the latest standings build failed, or
	// nil if it succeeded.
	LastBuildError() error

	// Reload re-ingests the results file and republishes standings.
	Reload(ctx context.Context) error
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	divisionsHandler   *DivisionsHandler
	leaderboardHandler *LeaderboardHandler
	lifterHandler      *LifterHandler
	exportHandler      *ExportHandler
	leagueHandler      *LeagueHandler
	reloadHandler      *ReloadHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		divisionsHandler:   NewDivisionsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		lifterHandler:      NewLifterHandler(deps),
		exportHandler:      NewExportHandler(deps),
		leagueHandler:      NewLeagueHandler(deps),
		reloadHandler:      NewReloadHandler(deps),
		dashboardHandler:   newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/divisions", MetricsMiddleware(s.divisionsHandler.HandleGetDivisions, "divisions"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/lifter/", MetricsMiddleware(s.lifterHandler.HandleGetLifter, "lifter"))
	mux.HandleFunc("/export/", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/league", MetricsMiddleware(s.leagueHandler.HandleGetLeague, "league"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// unavailableCode distinguishes why no standings are published, so
// clients can tell an empty results file from an unclassifiable one.
func unavailableCode(buildErr error) string {
	switch {
	case errors.Is(buildErr, league.ErrNoResults):
		return "no_results"
	case errors.Is(buildErr, league.ErrNoQualifiers):
		return "no_qualifiers"
	default:
		return "no_standings"
	}
}

// writeUnavailable reports a 503 for reads that found no published
// standings, carrying the reason the last build produced none.
func writeUnavailable(w http.ResponseWriter, deps interface{ LastBuildError() error }) {
	buildErr := deps.LastBuildError()
	err := buildErr
	if err == nil {
		err = repository.ErrNoStandings
	}
	writeError(w, http.StatusServiceUnavailable, unavailableCode(buildErr), err)
}
