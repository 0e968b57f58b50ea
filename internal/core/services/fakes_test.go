package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// --- Fakes shared by waiter, dispatcher and scheduler tests ---

// fakeClock advances its own time whenever a timer is requested, so waits
// complete instantly. elapse controls how much time a wait of d really takes,
// simulating suspend/resume; block makes timers never fire.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	waits  []time.Duration
	elapse func(d time.Duration) time.Duration
	block  bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	if c.block {
		return ch
	}

	step := d
	if c.elapse != nil {
		step = c.elapse(d)
	}
	c.now = c.now.Add(step)
	ch <- c.now
	return ch
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.waits))
	copy(out, c.waits)
	return out
}

// recordedAction is one call into fakeDisplay.
type recordedAction struct {
	Kind domain.ActionKind
	At   time.Time
}

// fakeDisplay implements both display actions and records when they ran.
type fakeDisplay struct {
	mu       sync.Mutex
	clock    driven.Clock
	actions  []recordedAction
	wakeErr  error
	sleepErr error
	onAction func(count int)
}

func (f *fakeDisplay) Wake(_ context.Context) error {
	f.record(domain.ActionWake)
	return f.wakeErr
}

func (f *fakeDisplay) Sleep(_ context.Context) error {
	f.record(domain.ActionSleep)
	return f.sleepErr
}

func (f *fakeDisplay) record(kind domain.ActionKind) {
	f.mu.Lock()
	f.actions = append(f.actions, recordedAction{Kind: kind, At: f.clock.Now()})
	count := len(f.actions)
	hook := f.onAction
	f.mu.Unlock()

	if hook != nil {
		hook(count)
	}
}

func (f *fakeDisplay) Actions() []recordedAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedAction, len(f.actions))
	copy(out, f.actions)
	return out
}

// fakeStatus records every status and forwards it on a channel when set.
type fakeStatus struct {
	mu       sync.Mutex
	statuses []domain.Status
	ch       chan domain.Status
}

func (f *fakeStatus) SetStatus(status domain.Status) {
	f.mu.Lock()
	f.statuses = append(f.statuses, status)
	ch := f.ch
	f.mu.Unlock()

	if ch != nil {
		select {
		case ch <- status:
		default:
		}
	}
}

func (f *fakeStatus) Statuses() []domain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Status, len(f.statuses))
	copy(out, f.statuses)
	return out
}

// failingJournal rejects every write.
type failingJournal struct {
	err error
}

func (j *failingJournal) Record(_ context.Context, _ *domain.JournalEntry) error {
	return j.err
}

func (j *failingJournal) Recent(_ context.Context, _ int) ([]domain.JournalEntry, error) {
	return nil, j.err
}

func (j *failingJournal) Prune(_ context.Context, _ int) error {
	return j.err
}

// Ensure fakes implement interfaces
var (
	_ driven.Clock         = (*fakeClock)(nil)
	_ driven.WakeAction    = (*fakeDisplay)(nil)
	_ driven.SleepAction   = (*fakeDisplay)(nil)
	_ driven.StatusSurface = (*fakeStatus)(nil)
	_ driven.ActionJournal = (*failingJournal)(nil)
)

// 2026-10-16 is a Friday.
func at(day, hour, minute, second int) time.Time {
	return time.Date(2026, time.October, day, hour, minute, second, 0, time.UTC)
}
