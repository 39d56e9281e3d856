package service

import "errors"

// Sentinel kinds for service-level failures.
var (
	// ErrNotAdmin rejects admin-only operations invoked without the
	// capability. The flag is an explicit parameter, not ambient state.
	ErrNotAdmin = errors.New("administrator rights required")

	// ErrEventMismatch rejects submissions where the judge or team does not
	// belong to the named event.
	ErrEventMismatch = errors.New("entity does not belong to event")
)
