package domain

import "fmt"

// Phase is the scheduler's position in its compute/wait/dispatch cycle.
type Phase string

// Scheduler phases.
const (
	PhaseStarting    Phase = "starting"
	PhaseWaiting     Phase = "waiting"
	PhaseDispatching Phase = "dispatching"
	PhaseStopped     Phase = "stopped"
	PhaseFailed      Phase = "failed"
)

// Status is a snapshot pushed to the status surface.
type Status struct {
	Phase Phase

	// Next is the event being waited on or dispatched. Zero when not applicable.
	Next Event

	// Message carries detail for PhaseFailed or free-form notes.
	Message string
}

// String renders the status for humans, e.g. "Waiting until Mon 06:30 (wake)".
func (s Status) String() string {
	switch s.Phase {
	case PhaseWaiting:
		return fmt.Sprintf("Waiting until %s (%s)", s.Next.At.Format("Mon 15:04"), s.Next.Kind)
	case PhaseDispatching:
		if s.Next.Kind == ActionSleep {
			return "Putting display to sleep"
		}
		return "Waking display"
	case PhaseStopped:
		return "Stopped"
	case PhaseFailed:
		if s.Message != "" {
			return "Failed: " + s.Message
		}
		return "Failed"
	case PhaseStarting:
		return "Starting"
	}
	if s.Message != "" {
		return s.Message
	}
	return string(s.Phase)
}
