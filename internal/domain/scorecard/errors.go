package scorecard

import "errors"

// Sentinel kinds for score record validation and state transitions.
var (
	// ErrInvalidScore marks a score outside [0, max_score] of its criterion.
	ErrInvalidScore = errors.New("score out of range")

	// ErrUnknownCriterion marks a score keyed by a criterion id that does not
	// belong to the record's event.
	ErrUnknownCriterion = errors.New("unknown criterion")

	// ErrLocked rejects mutations to a record in final state.
	ErrLocked = errors.New("cannot modify locked scores")

	// ErrAlreadyLocked rejects locking a record that is already final.
	ErrAlreadyLocked = errors.New("already locked")
)
