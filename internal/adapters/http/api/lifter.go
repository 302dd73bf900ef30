// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/chalk/internal/adapters/repository"
)

// LifterDependencies defines the interface for lifter lookups.
type LifterDependencies interface {
	Lifter(ctx context.Context, name string) ([]Entry, error)
	LastBuildError() error
}

// LifterHandler handles lifter lookup requests.
type LifterHandler struct {
	deps LifterDependencies
}

// NewLifterHandler creates a new lifter handler.
func NewLifterHandler(deps LifterDependencies) *LifterHandler {
	return &LifterHandler{deps: deps}
}

// HandleGetLifter handles GET /lifter/{name} requests. A lifter whose
// results landed in more than one division gets one entry per division.
func (h *LifterHandler) HandleGetLifter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /lifter/
	name := strings.TrimPrefix(r.URL.Path, "/lifter/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	entries, err := h.deps.Lifter(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLifterNotFound):
			writeError(w, http.StatusNotFound, "lifter_not_found", err)
		case errors.Is(err, repository.ErrNoStandings):
			writeUnavailable(w, h.deps)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
