package tui

import "errors"

// ErrMissingActionService is returned when the action service is not provided.
var ErrMissingActionService = errors.New("tui: action service is required")

// ErrMissingClock is returned when no clock is provided.
var ErrMissingClock = errors.New("tui: clock is required")
