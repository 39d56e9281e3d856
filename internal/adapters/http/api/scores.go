// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"juryd/internal/domain/model"
)

// validate checks request payload shapes before they reach the engine.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ScoreDependencies defines the interface for score mutations.
type ScoreDependencies interface {
	SubmitOrUpdateScore(ctx context.Context, judgeID, teamID, eventID string, scores map[string]float64, comments map[string]string, comment string) (*model.ScoreRecord, error)
	LockScore(ctx context.Context, recordID string) (*model.ScoreRecord, error)
	ResetScore(ctx context.Context, recordID string, actorIsAdmin bool) (*model.ScoreRecord, error)
	GetScore(ctx context.Context, recordID string) (*model.ScoreRecord, error)
}

// ScoresHandler handles score submission and lifecycle requests.
type ScoresHandler struct {
	deps ScoreDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoreDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// scoreRequest mirrors the OpenAPI schema for POST /scores.
type scoreRequest struct {
	JudgeID  string             `json:"judge_id"  validate:"required"`
	TeamID   string             `json:"team_id"   validate:"required"`
	EventID  string             `json:"event_id"  validate:"required"`
	Scores   map[string]float64 `json:"scores"    validate:"required"`
	Comments map[string]string  `json:"comments"`
	Comment  string             `json:"comment"`
}

// HandlePostScore handles POST /scores requests: create-or-update for the
// (judge, team) pair.
func (h *ScoresHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.SubmitOrUpdateScore(r.Context(), req.JudgeID, req.TeamID, req.EventID,
		req.Scores, req.Comments, req.Comment)
	if err != nil {
		writeEngineError(w, op, err)
		return
	}
	status := http.StatusOK
	if rec.CreatedAt.Equal(rec.UpdatedAt) {
		status = http.StatusCreated
	}
	writeJSON(w, status, toScoreResponse(rec))
}

// HandleScoreAction dispatches /scores/{id}, /scores/{id}/lock, and
// /scores/{id}/reset.
func (h *ScoresHandler) HandleScoreAction(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_action"

	rest := strings.TrimPrefix(r.URL.Path, "/scores/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		rec, err := h.deps.GetScore(r.Context(), id)
		if err != nil {
			writeEngineError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, toScoreResponse(rec))

	case action == "lock" && r.Method == http.MethodPost:
		rec, err := h.deps.LockScore(r.Context(), id)
		if err != nil {
			writeEngineError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, toScoreResponse(rec))

	case action == "reset" && r.Method == http.MethodPost:
		rec, err := h.deps.ResetScore(r.Context(), id, isAdmin(r))
		if err != nil {
			writeEngineError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, toScoreResponse(rec))

	default:
		http.NotFound(w, r)
	}
}
