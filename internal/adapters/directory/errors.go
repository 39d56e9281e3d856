package directory

import (
	"errors"
	"fmt"
)

// Sentinel kinds for directory errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrJudgeUnassigned = errors.New("judge has no assigned event")
	ErrInvalidSeed     = errors.New("invalid seed")
)

func errInvalidCriterion(name, reason string) error {
	return fmt.Errorf("%w: criterion %q: %s", ErrInvalidSeed, name, reason)
}
