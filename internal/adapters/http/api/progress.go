// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"juryd/internal/domain/model"
)

// ProgressDependencies defines the interface for jury progress reads.
type ProgressDependencies interface {
	JuryProgress(ctx context.Context, judgeID string) (model.JuryProgress, error)
}

// ProgressHandler handles jury progress requests.
type ProgressHandler struct {
	deps ProgressDependencies
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(deps ProgressDependencies) *ProgressHandler {
	return &ProgressHandler{deps: deps}
}

// HandleProgress handles GET /progress/{judge_id} requests.
func (h *ProgressHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	const op = "api.progress"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	judgeID := strings.TrimPrefix(r.URL.Path, "/progress/")
	if judgeID == "" || strings.Contains(judgeID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	progress, err := h.deps.JuryProgress(r.Context(), judgeID)
	if err != nil {
		writeEngineError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
