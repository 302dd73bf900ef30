// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	repository "github.com/okian/chalk/internal/adapters/repository"
)

// ReloadDependencies defines the interface for forced rebuilds.
type ReloadDependencies interface {
	Reload(ctx context.Context) error
	Summary(ctx context.Context) (repository.Summary, error)
}

// ReloadHandler handles forced standings rebuild requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

type reloadResponse struct {
	Status  string             `json:"status"`
	Summary repository.Summary `json:"summary"`
}

// HandleReload handles POST /reload requests. A failed rebuild answers
// 502 and leaves the previously published standings serving.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.Reload(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "reload_failed", err)
		return
	}

	summary, err := h.deps.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: "reloaded", Summary: summary})
}
