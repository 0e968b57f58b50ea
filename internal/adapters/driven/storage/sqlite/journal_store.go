package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// actionJournal implements driven.ActionJournal.
type actionJournal struct {
	store *Store
}

var _ driven.ActionJournal = (*actionJournal)(nil)

// Record inserts an entry, assigning an ID if it has none.
func (j *actionJournal) Record(ctx context.Context, entry *domain.JournalEntry) error {
	if entry == nil || !entry.Kind.IsValid() {
		return domain.ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	_, err := j.store.db.ExecContext(ctx, `
		INSERT INTO action_journal
			(id, kind, scheduled_at, dispatched_at, dispatched_unix, catch_up, manual, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		string(entry.Kind),
		formatTime(entry.ScheduledAt),
		formatTime(entry.DispatchedAt),
		entry.DispatchedAt.UnixNano(),
		entry.CatchUp,
		entry.Manual,
		entry.Success,
		entry.Error,
	)
	if err != nil {
		return fmt.Errorf("recording action: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recent dispatch first.
// A negative limit returns every entry.
func (j *actionJournal) Recent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	rows, err := j.store.db.QueryContext(ctx, `
		SELECT id, kind, scheduled_at, dispatched_at, catch_up, manual, success, error
		FROM action_journal
		ORDER BY dispatched_unix DESC, seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}

	return entries, nil
}

// Prune removes all but the most recent keep entries.
func (j *actionJournal) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := j.store.db.ExecContext(ctx, `
		DELETE FROM action_journal WHERE seq NOT IN (
			SELECT seq FROM action_journal
			ORDER BY dispatched_unix DESC, seq DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning journal: %w", err)
	}
	return nil
}

func scanJournalEntry(rows *sql.Rows) (*domain.JournalEntry, error) {
	var (
		entry                    domain.JournalEntry
		kind                     string
		scheduledAt, dispatchAt  string
		catchUp, manual, success bool
	)
	if err := rows.Scan(&entry.ID, &kind, &scheduledAt, &dispatchAt, &catchUp, &manual, &success, &entry.Error); err != nil {
		return nil, fmt.Errorf("scanning journal entry: %w", err)
	}

	var err error
	if entry.Kind, err = domain.ParseActionKind(kind); err != nil {
		return nil, err
	}
	if entry.ScheduledAt, err = parseTime(scheduledAt); err != nil {
		return nil, err
	}
	if entry.DispatchedAt, err = parseTime(dispatchAt); err != nil {
		return nil, err
	}
	entry.CatchUp = catchUp
	entry.Manual = manual
	entry.Success = success
	return &entry, nil
}

// Times keep their offset so history shows the wall clock the scheduler saw.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing journal time %q: %w", s, err)
	}
	return t, nil
}
