package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Ensure ActionJournal implements the interface.
var _ driven.ActionJournal = (*ActionJournal)(nil)

// ActionJournal is an in-memory implementation of driven.ActionJournal.
// Used when the on-disk journal is disabled and in tests.
type ActionJournal struct {
	mu      sync.RWMutex
	entries []domain.JournalEntry
}

// NewActionJournal creates a new in-memory action journal.
func NewActionJournal() *ActionJournal {
	return &ActionJournal{}
}

// Record appends an entry, assigning an ID if it has none.
func (j *ActionJournal) Record(_ context.Context, entry *domain.JournalEntry) error {
	if entry == nil {
		return domain.ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, *entry)
	return nil
}

// Recent returns up to limit entries, most recent dispatch first.
func (j *ActionJournal) Recent(_ context.Context, limit int) ([]domain.JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	result := j.sortedLocked()
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Prune removes all but the most recent keep entries.
func (j *ActionJournal) Prune(_ context.Context, keep int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	sorted := j.sortedLocked()
	if len(sorted) <= keep {
		return nil
	}
	kept := sorted[:keep]
	// Store oldest first, matching append order.
	j.entries = make([]domain.JournalEntry, 0, len(kept))
	for i := len(kept) - 1; i >= 0; i-- {
		j.entries = append(j.entries, kept[i])
	}
	return nil
}

// Len returns the number of stored entries.
func (j *ActionJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// sortedLocked returns a copy ordered by dispatch time descending (caller must hold lock).
func (j *ActionJournal) sortedLocked() []domain.JournalEntry {
	result := make([]domain.JournalEntry, len(j.entries))
	copy(result, j.entries)
	// Reverse first so entries recorded later win ties.
	for i, k := 0, len(result)-1; i < k; i, k = i+1, k-1 {
		result[i], result[k] = result[k], result[i]
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].DispatchedAt.After(result[b].DispatchedAt)
	})
	return result
}
