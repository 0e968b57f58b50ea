package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
	"github.com/custodia-labs/lumen/internal/core/ports/driving"
)

// Ensure Dispatcher implements the interface.
var _ driving.ActionService = (*Dispatcher)(nil)

// DispatchOptions describes why an action is being dispatched.
type DispatchOptions struct {
	// CatchUp marks the one-off sleep issued when starting inside quiet hours.
	CatchUp bool

	// Manual marks actions requested from the command line.
	Manual bool

	// SkipDelay powers the display off without the sleep pre-delay.
	SkipDelay bool
}

// Dispatcher invokes the wake and sleep collaborators for events.
type Dispatcher struct {
	wake       driven.WakeAction
	sleep      driven.SleepAction
	journal    driven.ActionJournal
	clock      driven.Clock
	sleepDelay time.Duration
	keep       int
	logger     zerolog.Logger
}

// NewDispatcher creates a dispatcher. journal may be nil.
func NewDispatcher(
	wake driven.WakeAction,
	sleep driven.SleepAction,
	journal driven.ActionJournal,
	clock driven.Clock,
	timing domain.TimingSettings,
	keep int,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		wake:       wake,
		sleep:      sleep,
		journal:    journal,
		clock:      clock,
		sleepDelay: timing.SleepDelay,
		keep:       keep,
		logger:     logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch performs the action for event.
//
// A sleep first waits out the configured pre-delay; cancelling ctx during the
// delay abandons the dispatch and returns ctx.Err(). Collaborator failures are
// logged at warn level, journaled and returned wrapped in
// domain.ErrActionFailed. They are never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.Event, opts DispatchOptions) error {
	var err error
	switch event.Kind {
	case domain.ActionWake:
		d.logger.Info().Msg("waking display")
		err = d.wake.Wake(ctx)
	case domain.ActionSleep:
		if !opts.SkipDelay && d.sleepDelay > 0 {
			d.logger.Info().Msgf("issuing display sleep in %.0f seconds", d.sleepDelay.Seconds())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-d.clock.After(d.sleepDelay):
			}
		}
		d.logger.Info().Msg("putting display to sleep")
		err = d.sleep.Sleep(ctx)
	default:
		return fmt.Errorf("%w: action kind %q", domain.ErrInvalidInput, event.Kind)
	}

	entry := &domain.JournalEntry{
		Kind:         event.Kind,
		ScheduledAt:  event.At,
		DispatchedAt: d.clock.Now(),
		CatchUp:      opts.CatchUp,
		Manual:       opts.Manual,
		Success:      err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
		d.logger.Warn().Err(err).Str("action", event.Kind.String()).Msg("display action failed")
	}
	d.record(ctx, entry)

	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrActionFailed, event.Kind, err)
	}
	return nil
}

// Trigger dispatches kind once, outside the schedule.
func (d *Dispatcher) Trigger(ctx context.Context, kind domain.ActionKind, immediate bool) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: action kind %q", domain.ErrInvalidInput, kind)
	}
	event := domain.Event{At: d.clock.Now(), Kind: kind}
	return d.Dispatch(ctx, event, DispatchOptions{Manual: true, SkipDelay: immediate})
}

// record journals an entry. Journal failures never affect dispatch.
func (d *Dispatcher) record(ctx context.Context, entry *domain.JournalEntry) {
	if d.journal == nil {
		return
	}
	// The dispatch already happened; record it even if ctx was just cancelled.
	ctx = context.WithoutCancel(ctx)
	if err := d.journal.Record(ctx, entry); err != nil {
		d.logger.Warn().Err(err).Msg("failed to record action")
		return
	}
	if d.keep > 0 {
		if err := d.journal.Prune(ctx, d.keep); err != nil {
			d.logger.Warn().Err(err).Msg("failed to prune journal")
		}
	}
}
