package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
	"github.com/custodia-labs/lumen/internal/core/ports/driving"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs the display through its weekly cycle.
// The loop itself is sequential; events are recomputed from the clock on
// every iteration and nothing but the policy survives between iterations.
type Scheduler struct {
	policy     domain.Policy
	clock      driven.Clock
	waiter     *Waiter
	dispatcher *Dispatcher
	status     driven.StatusSurface
	logger     zerolog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler creates a scheduler. status may be nil.
func NewScheduler(
	policy domain.Policy,
	clock driven.Clock,
	waiter *Waiter,
	dispatcher *Dispatcher,
	status driven.StatusSurface,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		policy:     policy,
		clock:      clock,
		waiter:     waiter,
		dispatcher: dispatcher,
		status:     status,
		logger:     logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start validates the policy, puts the display to sleep if started inside
// quiet hours, then loops until ctx is cancelled or Stop is called.
// It returns nil on cancellation and an error wrapping
// domain.ErrInvalidPolicy if the policy is inconsistent.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(doneCh)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.publish(domain.Status{Phase: domain.PhaseStarting})

	if err := s.policy.Validate(); err != nil {
		s.publish(domain.Status{Phase: domain.PhaseFailed, Message: err.Error()})
		return fmt.Errorf("scheduler: %w", err)
	}

	s.catchUp(ctx)

	err := s.run(ctx)
	s.publish(domain.Status{Phase: domain.PhaseStopped})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Info().Msg("scheduler stopped")
		return nil
	}
	return err
}

// Stop ends the loop and waits for Start to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
	return nil
}

// catchUp sleeps the display once when the process starts inside quiet
// hours, since no sleep event for today remains to trigger it.
func (s *Scheduler) catchUp(ctx context.Context) {
	now := s.clock.Now()
	if !s.policy.InQuietHours(now) {
		return
	}

	s.logger.Info().Msg("started inside quiet hours")
	event := domain.Event{At: now, Kind: domain.ActionSleep}
	s.publish(domain.Status{Phase: domain.PhaseDispatching, Next: event})
	if err := s.dispatcher.Dispatch(ctx, event, DispatchOptions{CatchUp: true}); err != nil && ctx.Err() == nil {
		s.logger.Warn().Err(err).Msg("catch-up sleep failed")
	}
}

// run is the main scheduler loop: compute next, wait, dispatch.
func (s *Scheduler) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := s.clock.Now()
		window := domain.GenerateWindow(now, s.policy)
		s.logger.Debug().
			Str("wake_today", s.policy.WakeTimeFor(now).String()).
			Str("wake_tomorrow", s.policy.WakeTimeFor(now.AddDate(0, 0, 1)).String()).
			Msg("generated schedule window")

		next, err := window.Next(now)
		if err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}

		s.logger.Info().
			Time("at", next.At).
			Str("action", next.Kind.String()).
			Msg("next event")
		s.publish(domain.Status{Phase: domain.PhaseWaiting, Next: next})

		if err := s.waiter.WaitUntil(ctx, next.At); err != nil {
			return err
		}

		s.publish(domain.Status{Phase: domain.PhaseDispatching, Next: next})
		if err := s.dispatcher.Dispatch(ctx, next, DispatchOptions{}); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			// Already logged by the dispatcher; the next iteration proceeds.
			continue
		}
	}
}

// publish pushes status to the surface, if any.
func (s *Scheduler) publish(status domain.Status) {
	s.logger.Debug().Str("phase", string(status.Phase)).Msg(status.String())
	if s.status != nil {
		s.status.SetStatus(status)
	}
}
