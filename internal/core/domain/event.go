package domain

import (
	"fmt"
	"sort"
	"time"
)

// ActionKind identifies what happens to the display at an event.
type ActionKind string

// Available action kinds.
const (
	// ActionWake revives the display.
	ActionWake ActionKind = "wake"

	// ActionSleep powers the display off.
	ActionSleep ActionKind = "sleep"
)

// IsValid returns true if the action kind is recognised.
func (k ActionKind) IsValid() bool {
	return k == ActionWake || k == ActionSleep
}

// String returns the string representation.
func (k ActionKind) String() string {
	return string(k)
}

// ParseActionKind converts a stored string back into an ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	k := ActionKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: action kind %q", ErrInvalidInput, s)
	}
	return k, nil
}

// Event is a single scheduled display transition.
// Events are values: compare them with ==.
type Event struct {
	// At is the moment the transition is due.
	At time.Time

	// Kind is the transition to perform.
	Kind ActionKind
}

// String formats the event as e.g. "wake at Mon 06:30".
func (e Event) String() string {
	return fmt.Sprintf("%s at %s", e.Kind, e.At.Format("Mon 15:04"))
}

// ScheduleWindow holds the events for today and tomorrow, sorted ascending by At.
type ScheduleWindow []Event

// GenerateWindow builds the Sleep and Wake events for the calendar date of now
// and the day after, sorted ascending. The two-day horizon always contains at
// least one event after now.
func GenerateWindow(now time.Time, p Policy) ScheduleWindow {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	window := ScheduleWindow{
		{At: p.Sleep.On(today), Kind: ActionSleep},
		{At: p.WakeTimeFor(today).On(today), Kind: ActionWake},
		{At: p.Sleep.On(tomorrow), Kind: ActionSleep},
		{At: p.WakeTimeFor(tomorrow).On(tomorrow), Kind: ActionWake},
	}

	sort.SliceStable(window, func(i, j int) bool {
		return window[i].At.Before(window[j].At)
	})
	return window
}

// Next returns the first event strictly after now.
func (w ScheduleWindow) Next(now time.Time) (Event, error) {
	for _, e := range w {
		if e.At.After(now) {
			return e, nil
		}
	}
	return Event{}, ErrNoUpcomingEvent
}

// SelectNext generates the window for now and returns its first future event.
func SelectNext(now time.Time, p Policy) (Event, error) {
	return GenerateWindow(now, p).Next(now)
}

// Upcoming returns the next n events after from, in order, by repeatedly
// advancing a simulated clock to each selected event.
func Upcoming(from time.Time, p Policy, n int) ([]Event, error) {
	events := make([]Event, 0, n)
	now := from
	for len(events) < n {
		e, err := SelectNext(now, p)
		if err != nil {
			return events, err
		}
		events = append(events, e)
		now = e.At
	}
	return events, nil
}
