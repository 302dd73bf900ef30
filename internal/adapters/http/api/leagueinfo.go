// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/chalk/internal/domain/league"
)

// LeagueDependencies defines the interface for league metadata reads.
type LeagueDependencies interface {
	LeagueInfo() league.Info
}

// LeagueHandler serves the league metadata shown on the board page.
type LeagueHandler struct {
	deps LeagueDependencies
}

// NewLeagueHandler creates a new league metadata handler.
func NewLeagueHandler(deps LeagueDependencies) *LeagueHandler {
	return &LeagueHandler{deps: deps}
}

// HandleGetLeague handles GET /league requests.
func (h *LeagueHandler) HandleGetLeague(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.LeagueInfo())
}
