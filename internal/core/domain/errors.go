package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPolicy indicates the sleep threshold is not after both wake times.
	// A scheduler must never start with such a policy.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrNoUpcomingEvent indicates a schedule window has no event after now.
	// Unreachable for a window generated from a valid policy.
	ErrNoUpcomingEvent = errors.New("no upcoming event")

	// Action Errors.

	// ErrActionUnavailable indicates the platform has no implementation for an action.
	ErrActionUnavailable = errors.New("action unavailable on this platform")

	// ErrActionFailed indicates a wake or sleep collaborator reported failure.
	ErrActionFailed = errors.New("action failed")
)
