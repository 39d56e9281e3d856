// Package repository defines the score record store interface and errors.
package repository

import (
	"context"

	"juryd/internal/domain/model"
)

// Store provides read/write access to score records. Implementations must
// give compare-and-insert semantics for the (judge, team) uniqueness
// invariant and make lock/reset transitions atomic with their precondition
// checks: two racing locks on one record yield exactly one success.
//
// All reads return deep copies; callers can never mutate stored state.
type Store interface {
	// Create inserts a new draft record, assigning its id and timestamps.
	// Returns ErrConflict if a record already exists for (judge, team).
	Create(ctx context.Context, rec *model.ScoreRecord) (*model.ScoreRecord, error)

	// Get returns the record by id. Returns ErrNotFound if unknown.
	Get(ctx context.Context, id string) (*model.ScoreRecord, error)

	// GetByJudgeTeam returns the record for a (judge, team) pair.
	// Returns ErrNotFound if no record exists.
	GetByJudgeTeam(ctx context.Context, judgeID, teamID string) (*model.ScoreRecord, error)

	// Update replaces the scores mapping and comments of a draft record.
	// Returns scorecard.ErrLocked on a final record.
	Update(ctx context.Context, id string, scores map[string]float64, comments map[string]string, comment string) (*model.ScoreRecord, error)

	// Lock transitions a draft record to final.
	// Returns scorecard.ErrAlreadyLocked on a final record.
	Lock(ctx context.Context, id string) (*model.ScoreRecord, error)

	// Reset returns a record to an empty draft. The pre-reset snapshot is
	// returned alongside the updated record so callers can audit it.
	Reset(ctx context.Context, id string) (before, after *model.ScoreRecord, err error)

	// ListByEvent returns the event's records in insertion order.
	ListByEvent(ctx context.Context, eventID string) ([]*model.ScoreRecord, error)

	// CountLocked counts final records for an event.
	CountLocked(ctx context.Context, eventID string) int

	// CountLockedByJudge counts final records submitted by one judge.
	CountLockedByJudge(ctx context.Context, judgeID string) int

	// Count returns the number of records tracked in the store.
	Count(ctx context.Context) int
}
