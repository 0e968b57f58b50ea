package services

import (
	"context"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
	"github.com/custodia-labs/lumen/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryLimit applies when a non-positive limit is requested.
const defaultHistoryLimit = 20

// HistoryService reads the action journal.
type HistoryService struct {
	journal driven.ActionJournal
}

// NewHistoryService creates a history service over journal.
func NewHistoryService(journal driven.ActionJournal) *HistoryService {
	return &HistoryService{journal: journal}
}

// Recent returns up to limit journal entries, most recent first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if s.journal == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.journal.Recent(ctx, limit)
}
