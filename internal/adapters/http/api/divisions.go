// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// DivisionsDependencies defines the interface for division listing.
type DivisionsDependencies interface {
	Divisions(ctx context.Context) []string
}

// DivisionsHandler handles division listing requests.
type DivisionsHandler struct {
	deps DivisionsDependencies
}

// NewDivisionsHandler creates a new divisions handler.
func NewDivisionsHandler(deps DivisionsDependencies) *DivisionsHandler {
	return &DivisionsHandler{deps: deps}
}

// HandleGetDivisions handles GET /divisions requests. The order of the
// returned names is the configured display order.
func (h *DivisionsHandler) HandleGetDivisions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Divisions(r.Context()))
}
