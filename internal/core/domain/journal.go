package domain

import "time"

// JournalEntry records one dispatched action for later inspection.
// Entries are an audit trail only; the scheduler never reads them back.
type JournalEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// Kind is the action that was dispatched.
	Kind ActionKind

	// ScheduledAt is when the event was due. Equals DispatchedAt for catch-up
	// and manual dispatches.
	ScheduledAt time.Time

	// DispatchedAt is when the collaborator was invoked.
	DispatchedAt time.Time

	// CatchUp marks the start-up sleep issued inside quiet hours.
	CatchUp bool

	// Manual marks actions triggered from the command line.
	Manual bool

	// Success indicates whether the collaborator returned without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string
}
