// Package scorecard holds the score record rules: range validation against
// an event's criterion set and the draft/final state transitions.
//
// The functions are pure so the store can run them under its own lock and
// callers can test them without shared state.
package scorecard

import (
	"fmt"
	"time"

	"juryd/internal/domain/model"
)

// ValidateScores checks every entry of scores against the event's current
// criterion set: the criterion must exist and the raw score must lie in
// [0, max_score]. The first offending criterion is cited in the error.
func ValidateScores(scores map[string]float64, criteria []model.Criterion) error {
	byID := make(map[string]model.Criterion, len(criteria))
	for _, c := range criteria {
		byID[c.ID] = c
	}
	for id, score := range scores {
		c, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: criterion %s does not exist", ErrUnknownCriterion, id)
		}
		if score < 0 || score > float64(c.MaxScore) {
			return fmt.Errorf("%w: score for %s must be between 0 and %d", ErrInvalidScore, c.Name, c.MaxScore)
		}
	}
	return nil
}

// ApplyUpdate replaces the scores mapping and comments of a draft record.
// Fails with ErrLocked on a final record. Range validation is the caller's
// responsibility (it needs the criterion set).
func ApplyUpdate(rec *model.ScoreRecord, scores map[string]float64, comments map[string]string, comment string, now time.Time) error {
	if rec.Locked {
		return ErrLocked
	}
	rec.Scores = make(map[string]float64, len(scores))
	for k, v := range scores {
		rec.Scores[k] = v
	}
	rec.Comments = make(map[string]string, len(comments))
	for k, v := range comments {
		rec.Comments[k] = v
	}
	rec.Comment = comment
	rec.UpdatedAt = now
	return nil
}

// Lock transitions a draft record to final, stamping submitted_at.
// Fails with ErrAlreadyLocked on a final record.
func Lock(rec *model.ScoreRecord, now time.Time) error {
	if rec.Locked {
		return ErrAlreadyLocked
	}
	rec.Locked = true
	rec.SubmittedAt = &now
	rec.UpdatedAt = now
	return nil
}

// Reset returns a record to draft, clearing all score data, comments and the
// submitted_at stamp. Legal from both states; the admin-only gate sits with
// the caller as an explicit capability check.
func Reset(rec *model.ScoreRecord, now time.Time) {
	rec.Scores = map[string]float64{}
	rec.Comments = map[string]string{}
	rec.Comment = ""
	rec.Locked = false
	rec.SubmittedAt = nil
	rec.UpdatedAt = now
}
