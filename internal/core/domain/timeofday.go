package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay returns a TimeOfDay, rejecting out-of-range components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %02d:%02d:%02d out of range",
			ErrInvalidInput, hour, minute, second)
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid input.
// Intended for defaults and tests.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, 0)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q, want HH:MM or HH:MM:SS", ErrInvalidInput, s)
	}

	values := make([]int, 3)
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return TimeOfDay{}, fmt.Errorf("%w: time of day %q", ErrInvalidInput, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: time of day %q", ErrInvalidInput, s)
		}
		values[i] = n
	}

	return NewTimeOfDay(values[0], values[1], values[2])
}

// On returns the moment at this time of day on the calendar date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, t.Second, 0, d.Location())
}

// Seconds returns the offset of t from midnight in seconds.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.Seconds() < u.Seconds()
}

// After reports whether t is later in the day than u.
func (t TimeOfDay) After(u TimeOfDay) bool {
	return t.Seconds() > u.Seconds()
}

// String returns "HH:MM", or "HH:MM:SS" when seconds are set.
func (t TimeOfDay) String() string {
	if t.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
