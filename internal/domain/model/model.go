// Package model contains domain models passed between layers.
package model

import "time"

// EventStatus describes the display lifecycle of an event. The engine reads
// it but never enforces transitions.
type EventStatus string

// Event lifecycle states.
const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// Event is the scoping boundary for teams, judges, and criteria.
type Event struct {
	ID        string
	Name      string
	Status    EventStatus
	CreatedAt time.Time
}

// Criterion is a named, weighted, bounded scoring axis belonging to one event.
type Criterion struct {
	ID            string
	EventID       string
	Name          string
	MaxScore      int     // must be >= 1
	Weight        float64 // non-negative, defaults to 1.0
	PriorityOrder int     // display ordering only
	CreatedAt     time.Time
}

// Team is a participating team within one event.
type Team struct {
	ID          string
	EventID     string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Judge is a jury-role user assigned to one event.
type Judge struct {
	ID        string
	EventID   string
	Name      string
	CreatedAt time.Time
}

// ScoreRecord is one judge's score submission for one team. It is draft
// (mutable) until locked, then frozen until an administrative reset.
type ScoreRecord struct {
	ID          string
	EventID     string
	JudgeID     string
	TeamID      string
	Scores      map[string]float64 // criterion id -> raw score
	Comments    map[string]string  // criterion id -> free-text comment
	Comment     string             // global comment
	Locked      bool
	SubmittedAt *time.Time // set at lock time, cleared on reset
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy so callers can never mutate stored state.
func (r *ScoreRecord) Clone() *ScoreRecord {
	cp := *r
	cp.Scores = make(map[string]float64, len(r.Scores))
	for k, v := range r.Scores {
		cp.Scores[k] = v
	}
	cp.Comments = make(map[string]string, len(r.Comments))
	for k, v := range r.Comments {
		cp.Comments[k] = v
	}
	if r.SubmittedAt != nil {
		t := *r.SubmittedAt
		cp.SubmittedAt = &t
	}
	return &cp
}

// JudgeScore is one judge's contribution to a team result. Judges without a
// record for the team appear with an empty score map and a zero total.
type JudgeScore struct {
	JudgeID   string             `json:"judge_id"`
	JudgeName string             `json:"judge_name"`
	Scores    map[string]float64 `json:"scores"`
	Total     float64            `json:"total"`
}

// AggregateResult is the derived, cacheable ranking row for one team. It is
// entirely recomputable from score records and criteria.
type AggregateResult struct {
	TeamID      string       `json:"team_id"`
	TeamName    string       `json:"team_name"`
	TotalScore  float64      `json:"total_score"`
	JudgeScores []JudgeScore `json:"judge_scores"`
}

// CompletionStatus reports per-event scoring progress.
type CompletionStatus struct {
	AllComplete    bool `json:"all_complete"`
	TeamsCount     int  `json:"teams_count"`
	JudgesCount    int  `json:"judges_count"`
	ScoresCount    int  `json:"scores_count"`
	RequiredScores int  `json:"required_scores"`
}

// JuryProgress reports one judge's scoring progress across their event.
type JuryProgress struct {
	JudgeID     string `json:"judge_id"`
	JudgeName   string `json:"judge_name"`
	TeamsCount  int    `json:"teams_count"`
	ScoredCount int    `json:"scored_count"`
	Percentage  int    `json:"percentage"`
}

// AuditAction enumerates the change notifications emitted to the audit sink.
type AuditAction string

// Audit actions.
const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditLock   AuditAction = "LOCK"
	AuditReset  AuditAction = "RESET"
	AuditDelete AuditAction = "DELETE"
)

// AuditEntry is a best-effort change notification. Delivery is
// fire-and-forget; losing one must never affect the mutation it describes.
type AuditEntry struct {
	Actor      string
	Action     AuditAction
	TargetType string
	TargetID   string
	Payload    map[string]any
	At         time.Time
}
