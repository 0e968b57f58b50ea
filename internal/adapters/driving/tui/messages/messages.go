// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/lumen/internal/core/domain"
)

// StatusChanged carries a scheduler status update into the program.
type StatusChanged struct {
	Status domain.Status
}

// HistoryLoaded carries recent journal entries.
type HistoryLoaded struct {
	Entries []domain.JournalEntry
	Err     error
}

// ActionRequested asks for a manual display action.
type ActionRequested struct {
	Kind domain.ActionKind
}

// ActionCompleted reports the outcome of a manual action.
type ActionCompleted struct {
	Kind domain.ActionKind
	Err  error
}

// Quit is sent to exit the program.
type Quit struct{}
