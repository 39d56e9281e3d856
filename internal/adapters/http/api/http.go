// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"juryd/internal/adapters/directory"
	"juryd/internal/adapters/repository"
	service "juryd/internal/app"
	"juryd/internal/domain/model"
	"juryd/internal/domain/scorecard"
)

// Role header. The surrounding system authenticates; handlers only read the
// role it forwards.
const (
	roleHeader = "X-Actor-Role"
	roleAdmin  = "admin"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the engine implementation.
type Dependencies interface {
	ScoreDependencies
	ResultsDependencies
	CompletionDependencies
	ProgressDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	scoresHandler     *ScoresHandler
	resultsHandler    *ResultsHandler
	completionHandler *CompletionHandler
	progressHandler   *ProgressHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		scoresHandler:     NewScoresHandler(deps),
		resultsHandler:    NewResultsHandler(deps),
		completionHandler: NewCompletionHandler(deps),
		progressHandler:   NewProgressHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandlePostScore, "scores"))
	mux.HandleFunc("/scores/", MetricsMiddleware(s.scoresHandler.HandleScoreAction, "score_action"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleResults, "results"))
	mux.HandleFunc("/completion", MetricsMiddleware(s.completionHandler.HandleCompletion, "completion"))
	mux.HandleFunc("/progress/", MetricsMiddleware(s.progressHandler.HandleProgress, "progress"))
}

// scoreResponse mirrors the OpenAPI schema for score records.
type scoreResponse struct {
	ID          string             `json:"id"`
	EventID     string             `json:"event_id"`
	JudgeID     string             `json:"judge_id"`
	TeamID      string             `json:"team_id"`
	Scores      map[string]float64 `json:"scores"`
	Comments    map[string]string  `json:"comments,omitempty"`
	Comment     string             `json:"comment,omitempty"`
	Locked      bool               `json:"locked"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func toScoreResponse(rec *model.ScoreRecord) scoreResponse {
	return scoreResponse{
		ID:          rec.ID,
		EventID:     rec.EventID,
		JudgeID:     rec.JudgeID,
		TeamID:      rec.TeamID,
		Scores:      rec.Scores,
		Comments:    rec.Comments,
		Comment:     rec.Comment,
		Locked:      rec.Locked,
		SubmittedAt: rec.SubmittedAt,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
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

// writeEngineError translates engine sentinels into HTTP responses.
func writeEngineError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, scorecard.ErrInvalidScore),
		errors.Is(err, scorecard.ErrUnknownCriterion),
		errors.Is(err, scorecard.ErrAlreadyLocked),
		errors.Is(err, directory.ErrJudgeUnassigned),
		errors.Is(err, service.ErrEventMismatch):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, scorecard.ErrLocked),
		errors.Is(err, service.ErrNotAdmin):
		writeError(w, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, directory.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

func isAdmin(r *http.Request) bool {
	return r.Header.Get(roleHeader) == roleAdmin
}
