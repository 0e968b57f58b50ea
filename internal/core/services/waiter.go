package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Waiter blocks until a wall-clock moment has been reached.
//
// Timers measure elapsed time, not wall-clock time, and a machine that
// suspends mid-wait can return early or late. Waiter therefore re-reads the
// clock after every timer and waits again until the target has truly passed.
type Waiter struct {
	clock  driven.Clock
	settle time.Duration
	logger zerolog.Logger
}

// NewWaiter creates a waiter that pads every wait by settle.
// A negative settle is treated as zero.
func NewWaiter(clock driven.Clock, settle time.Duration, logger zerolog.Logger) *Waiter {
	settle = max(settle, 0)
	return &Waiter{
		clock:  clock,
		settle: settle,
		logger: logger.With().Str("component", "waiter").Logger(),
	}
}

// WaitUntil returns once the clock reads at or after target.
// A target that has already passed returns immediately. Cancelling ctx
// interrupts the wait and returns ctx.Err().
func (w *Waiter) WaitUntil(ctx context.Context, target time.Time) error {
	remaining := target.Sub(w.clock.Now())
	if remaining <= 0 {
		w.logger.Debug().Time("target", target).Msg("target already passed")
		return nil
	}

	for {
		d := remaining + w.settle
		w.logger.Info().Time("target", target).Dur("wait", d).Msgf("sleeping for %.0f seconds", d.Seconds())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.clock.After(d):
		}

		now := w.clock.Now()
		if !now.Before(target) {
			return nil
		}

		remaining = target.Sub(now)
		w.logger.Warn().
			Time("target", target).
			Dur("remaining", remaining).
			Msg("woke before target, waiting again")
	}
}
