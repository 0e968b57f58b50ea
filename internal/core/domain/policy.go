package domain

import (
	"fmt"
	"time"
)

// Policy is the weekly recurring display schedule.
// It is loaded once at start-up and never mutated afterwards.
type Policy struct {
	// WakeWeekday is when the display is revived Monday to Friday.
	WakeWeekday TimeOfDay

	// WakeWeekend is when the display is revived on Saturday and Sunday.
	WakeWeekend TimeOfDay

	// Sleep is the daily threshold after which the display is put to sleep.
	Sleep TimeOfDay
}

// DefaultPolicy returns the stock schedule: 06:30 on weekdays, 09:00 at
// weekends, sleep at 22:00.
func DefaultPolicy() Policy {
	return Policy{
		WakeWeekday: MustTimeOfDay(6, 30),
		WakeWeekend: MustTimeOfDay(9, 0),
		Sleep:       MustTimeOfDay(22, 0),
	}
}

// Validate checks that Sleep is strictly later in the day than both wake times.
func (p Policy) Validate() error {
	if !p.Sleep.After(p.WakeWeekday) {
		return fmt.Errorf("%w: sleep %s is not after weekday wake %s", ErrInvalidPolicy, p.Sleep, p.WakeWeekday)
	}
	if !p.Sleep.After(p.WakeWeekend) {
		return fmt.Errorf("%w: sleep %s is not after weekend wake %s", ErrInvalidPolicy, p.Sleep, p.WakeWeekend)
	}
	return nil
}

// WakeTimeFor returns the wake time that applies on the calendar date of d.
func (p Policy) WakeTimeFor(d time.Time) TimeOfDay {
	if IsWeekend(d) {
		return p.WakeWeekend
	}
	return p.WakeWeekday
}

// InQuietHours reports whether now lies between a sleep threshold and the
// following wake time, i.e. at or after today's sleep or before today's wake.
func (p Policy) InQuietHours(now time.Time) bool {
	if !now.Before(p.Sleep.On(now)) {
		return true
	}
	return now.Before(p.WakeTimeFor(now).On(now))
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
