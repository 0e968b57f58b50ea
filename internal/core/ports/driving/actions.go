package driving

import (
	"context"

	"github.com/custodia-labs/lumen/internal/core/domain"
)

// ActionService dispatches display actions outside the schedule.
type ActionService interface {
	// Trigger performs kind once. When immediate is false a sleep honours the
	// configured pre-delay.
	Trigger(ctx context.Context, kind domain.ActionKind, immediate bool) error
}

// HistoryService reads the action journal.
type HistoryService interface {
	// Recent returns up to limit journal entries, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}
