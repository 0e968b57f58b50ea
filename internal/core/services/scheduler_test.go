package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lumen/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lumen/internal/core/domain"
)

type schedulerHarness struct {
	clock     *fakeClock
	display   *fakeDisplay
	status    *fakeStatus
	journal   *memory.ActionJournal
	scheduler *Scheduler
}

func newSchedulerHarness(now time.Time, policy domain.Policy) *schedulerHarness {
	clock := newFakeClock(now)
	display := &fakeDisplay{clock: clock}
	status := &fakeStatus{}
	journal := memory.NewActionJournal()
	timing := domain.DefaultTimingSettings()

	waiter := NewWaiter(clock, timing.SettleBuffer, zerolog.Nop())
	dispatcher := NewDispatcher(display, display, journal, clock, timing, 0, zerolog.Nop())

	return &schedulerHarness{
		clock:     clock,
		display:   display,
		status:    status,
		journal:   journal,
		scheduler: NewScheduler(policy, clock, waiter, dispatcher, status, zerolog.Nop()),
	}
}

// runActions starts the scheduler and cancels it once n actions have run.
func (h *schedulerHarness) runActions(t *testing.T, n int) []recordedAction {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.display.onAction = func(count int) {
		if count >= n {
			cancel()
		}
	}

	require.NoError(t, h.scheduler.Start(ctx))
	return h.display.Actions()
}

func TestNewScheduler(t *testing.T) {
	h := newSchedulerHarness(at(16, 12, 0, 0), domain.DefaultPolicy())

	require.NotNil(t, h.scheduler)
	assert.Equal(t, domain.DefaultPolicy(), h.scheduler.policy)
}

func TestScheduler_InvalidPolicyFailsStartup(t *testing.T) {
	policy := domain.DefaultPolicy()
	policy.Sleep = domain.MustTimeOfDay(6, 0)
	h := newSchedulerHarness(at(16, 23, 0, 0), policy)

	err := h.scheduler.Start(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)
	assert.Empty(t, h.display.Actions())
	assert.Empty(t, h.clock.Waits())

	statuses := h.status.Statuses()
	require.NotEmpty(t, statuses)
	assert.Equal(t, domain.PhaseFailed, statuses[len(statuses)-1].Phase)
}

func TestScheduler_CatchUpMondayNight(t *testing.T) {
	h := newSchedulerHarness(at(19, 23, 55, 0), domain.DefaultPolicy())

	actions := h.runActions(t, 5)

	assert.Equal(t, []recordedAction{
		{Kind: domain.ActionSleep, At: at(19, 23, 55, 15)}, // catch-up after pre-delay
		{Kind: domain.ActionWake, At: at(20, 6, 30, 5)},    // Tuesday wake
		{Kind: domain.ActionSleep, At: at(20, 22, 0, 20)},
		{Kind: domain.ActionWake, At: at(21, 6, 30, 5)},
		{Kind: domain.ActionSleep, At: at(21, 22, 0, 20)},
	}, actions)

	entries, err := h.journal.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	oldest := entries[len(entries)-1]
	assert.True(t, oldest.CatchUp)
	assert.Equal(t, domain.ActionSleep, oldest.Kind)
	for _, e := range entries[:len(entries)-1] {
		assert.False(t, e.CatchUp)
	}
}

func TestScheduler_NoCatchUpDuringDay(t *testing.T) {
	h := newSchedulerHarness(at(16, 15, 0, 0), domain.DefaultPolicy())

	actions := h.runActions(t, 4)

	assert.Equal(t, []recordedAction{
		{Kind: domain.ActionSleep, At: at(16, 22, 0, 20)}, // Friday
		{Kind: domain.ActionWake, At: at(17, 9, 0, 5)},    // Saturday uses weekend wake
		{Kind: domain.ActionSleep, At: at(17, 22, 0, 20)},
		{Kind: domain.ActionWake, At: at(18, 9, 0, 5)}, // Sunday
	}, actions)
}

func TestScheduler_CatchUpEarlyMorning(t *testing.T) {
	h := newSchedulerHarness(at(16, 5, 0, 0), domain.DefaultPolicy())

	actions := h.runActions(t, 2)

	assert.Equal(t, []recordedAction{
		{Kind: domain.ActionSleep, At: at(16, 5, 0, 15)},
		{Kind: domain.ActionWake, At: at(16, 6, 30, 5)},
	}, actions)
}

func TestScheduler_AlternatesForever(t *testing.T) {
	h := newSchedulerHarness(at(16, 12, 0, 0), domain.DefaultPolicy())
	policy := domain.DefaultPolicy()

	actions := h.runActions(t, 60)

	require.Len(t, actions, 60)
	assert.Equal(t, domain.ActionSleep, actions[0].Kind)
	for i := 1; i < len(actions); i++ {
		assert.NotEqual(t, actions[i-1].Kind, actions[i].Kind, "repeat at %d", i)
		assert.True(t, actions[i].At.After(actions[i-1].At), "not increasing at %d", i)

		gap := actions[i].At.Sub(actions[i-1].At)
		assert.Less(t, gap, 24*time.Hour, "gap at %d", i)
	}
	for _, a := range actions {
		if a.Kind != domain.ActionWake {
			continue
		}
		want := policy.WakeTimeFor(a.At).On(a.At).Add(5 * time.Second)
		assert.Equal(t, want, a.At)
	}
}

func TestScheduler_StatusWhileWaiting(t *testing.T) {
	h := newSchedulerHarness(at(19, 12, 0, 0), domain.DefaultPolicy())
	h.actionsBlock()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.scheduler.Start(ctx) }()

	waitForPhase(t, h.status, domain.PhaseWaiting)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}

	statuses := h.status.Statuses()
	var waiting domain.Status
	for _, s := range statuses {
		if s.Phase == domain.PhaseWaiting {
			waiting = s
		}
	}
	assert.Equal(t, "Waiting until Mon 22:00 (sleep)", waiting.String())
	assert.Equal(t, domain.PhaseStopped, statuses[len(statuses)-1].Phase)
	assert.Empty(t, h.display.Actions())
}

func TestScheduler_Stop(t *testing.T) {
	h := newSchedulerHarness(at(19, 12, 0, 0), domain.DefaultPolicy())
	h.actionsBlock()

	errCh := make(chan error, 1)
	go func() { errCh <- h.scheduler.Start(context.Background()) }()

	waitForPhase(t, h.status, domain.PhaseWaiting)
	require.NoError(t, h.scheduler.Stop())

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	// Stopping again is a no-op.
	assert.NoError(t, h.scheduler.Stop())
}

func TestScheduler_StopWhenNotRunning(t *testing.T) {
	h := newSchedulerHarness(at(19, 12, 0, 0), domain.DefaultPolicy())

	assert.NoError(t, h.scheduler.Stop())
}

func TestScheduler_StartWhileRunningIsNoop(t *testing.T) {
	h := newSchedulerHarness(at(19, 12, 0, 0), domain.DefaultPolicy())
	h.actionsBlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- h.scheduler.Start(ctx) }()
	waitForPhase(t, h.status, domain.PhaseWaiting)

	assert.NoError(t, h.scheduler.Start(ctx))

	cancel()
	<-errCh
}

func TestScheduler_ActionFailureDoesNotStopLoop(t *testing.T) {
	h := newSchedulerHarness(at(16, 15, 0, 0), domain.DefaultPolicy())
	h.display.sleepErr = errors.New("doff.exe not found")

	actions := h.runActions(t, 3)

	require.Len(t, actions, 3)
	entries, _ := h.journal.Recent(context.Background(), 10)
	require.Len(t, entries, 3)
	failed := 0
	for _, e := range entries {
		if !e.Success {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
}

func TestScheduler_CancelDuringSleepDelay(t *testing.T) {
	clock := newFakeClock(at(19, 21, 59, 0))
	display := &fakeDisplay{clock: clock}
	journal := memory.NewActionJournal()
	timing := domain.DefaultTimingSettings()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Park the clock and cancel once the 22:00 sleep is reached, before its pre-delay.
	status := statusFunc(func(s domain.Status) {
		if s.Phase == domain.PhaseDispatching {
			clock.mu.Lock()
			clock.block = true
			clock.mu.Unlock()
			cancel()
		}
	})

	scheduler := NewScheduler(
		domain.DefaultPolicy(),
		clock,
		NewWaiter(clock, timing.SettleBuffer, zerolog.Nop()),
		NewDispatcher(display, display, journal, clock, timing, 0, zerolog.Nop()),
		status,
		zerolog.Nop(),
	)

	require.NoError(t, scheduler.Start(ctx))
	assert.Empty(t, display.Actions())
	assert.Equal(t, 0, journal.Len())
}

// actionsBlock makes all timers hang so the scheduler parks in its wait.
func (h *schedulerHarness) actionsBlock() {
	h.clock.block = true
	h.status.ch = make(chan domain.Status, 16)
}

func waitForPhase(t *testing.T, status *fakeStatus, phase domain.Phase) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-status.ch:
			if s.Phase == phase {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for phase %s", phase)
		}
	}
}

type statusFunc func(domain.Status)

func (f statusFunc) SetStatus(s domain.Status) { f(s) }
