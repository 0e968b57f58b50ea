// Package tui provides the interactive status screen shown by `lumen run`.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
	"github.com/custodia-labs/lumen/internal/core/ports/driving"
)

// Ports aggregates everything the status screen reads from or drives.
type Ports struct {
	// Policy is the schedule being run.
	Policy domain.Policy

	// Clock computes upcoming events.
	Clock driven.Clock

	// Actions triggers manual wake and sleep.
	Actions driving.ActionService

	// History lists recent dispatches. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Actions == nil {
		return ErrMissingActionService
	}
	if p.Clock == nil {
		return ErrMissingClock
	}
	return nil
}
