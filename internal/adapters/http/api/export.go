// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	repository "github.com/okian/chalk/internal/adapters/repository"
	"github.com/okian/chalk/pkg/metrics"
)

// ExportDependencies defines the interface for CSV export reads.
type ExportDependencies interface {
	Leaderboard(ctx context.Context, division string, limit int) ([]Entry, error)
	LastBuildError() error
}

// ExportHandler handles division CSV download requests.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExport handles GET /export/{division} requests and streams the
// division standings as CSV. Underscores in the path segment stand in
// for spaces, so /export/Open_Men and /export/Open%20Men both work.
// Dots values are written in their shortest form that parses back to
// the same float, so an exported file re-ingests without drift.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /export/
	div := strings.TrimPrefix(r.URL.Path, "/export/")
	div = strings.TrimSuffix(div, ".csv")
	if div == "" || strings.Contains(div, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	div = strings.ReplaceAll(div, "_", " ")

	entries, err := h.deps.Leaderboard(r.Context(), div, 0)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownDivision):
			writeError(w, http.StatusNotFound, "unknown_division", err)
		case errors.Is(err, repository.ErrNoStandings):
			writeUnavailable(w, h.deps)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	filename := strings.ReplaceAll(div, " ", "_") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Rank", "Name", "Dots"})
	for _, e := range entries {
		_ = cw.Write([]string{
			strconv.Itoa(e.Rank),
			e.Name,
			strconv.FormatFloat(e.Dots, 'g', -1, 64),
		})
	}
	cw.Flush()

	metrics.RecordCSVExport(div)
}
