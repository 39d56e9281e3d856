// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"juryd/internal/domain/model"
)

// ResultsDependencies defines the interface for ranked result reads.
type ResultsDependencies interface {
	Results(ctx context.Context, eventID string) ([]model.AggregateResult, error)
	InvalidateResults(ctx context.Context, eventID string) error
}

// ResultsHandler handles ranked result requests.
type ResultsHandler struct {
	deps ResultsDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultsDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleResults handles GET /results?event_id=X and the admin-only
// DELETE /results?event_id=X cache invalidation hook.
func (h *ResultsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.results"

	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		results, err := h.deps.Results(r.Context(), eventID)
		if err != nil {
			writeEngineError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, results)

	case http.MethodDelete:
		if !isAdmin(r) {
			writeError(w, http.StatusForbidden, "forbidden", NewKind(op, ErrBadRequest))
			return
		}
		if err := h.deps.InvalidateResults(r.Context(), eventID); err != nil {
			writeEngineError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})

	default:
		http.NotFound(w, r)
	}
}
