// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"juryd/internal/domain/model"
)

// CompletionDependencies defines the interface for completion checks.
type CompletionDependencies interface {
	CheckCompletion(ctx context.Context, eventID string) (model.CompletionStatus, error)
}

// CompletionHandler handles event completion requests.
type CompletionHandler struct {
	deps CompletionDependencies
}

// NewCompletionHandler creates a new completion handler.
func NewCompletionHandler(deps CompletionDependencies) *CompletionHandler {
	return &CompletionHandler{deps: deps}
}

// HandleCompletion handles GET /completion?event_id=X requests.
func (h *CompletionHandler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	const op = "api.completion"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	status, err := h.deps.CheckCompletion(r.Context(), eventID)
	if err != nil {
		writeEngineError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
