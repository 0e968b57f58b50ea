package driven

import (
	"context"

	"github.com/custodia-labs/lumen/internal/core/domain"
)

// ActionJournal is an append-only audit trail of dispatched display actions.
// It is never consulted to rebuild schedule state.
type ActionJournal interface {
	// Record appends an entry. Entries without an ID are assigned one.
	Record(ctx context.Context, entry *domain.JournalEntry) error

	// Recent returns up to limit entries, most recent dispatch first.
	Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error)

	// Prune removes all but the most recent keep entries.
	Prune(ctx context.Context, keep int) error
}
