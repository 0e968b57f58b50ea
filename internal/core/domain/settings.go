package domain

import (
	"fmt"
	"time"
)

// Settings holds everything the scheduler needs, resolved once at start-up.
type Settings struct {
	Policy  Policy
	Timing  TimingSettings
	Display DisplaySettings
	Journal JournalSettings
	Log     LogSettings
}

// TimingSettings holds the fixed delays around a transition.
type TimingSettings struct {
	// SettleBuffer is added to every computed wait so an action never fires
	// fractionally before its scheduled instant.
	SettleBuffer time.Duration

	// SleepDelay is waited before powering the display off, letting any
	// just-woken state settle.
	SleepDelay time.Duration

	// NudgeHold is how long the cursor stays displaced during a wake nudge.
	NudgeHold time.Duration
}

// DisplaySettings overrides the platform display actions.
type DisplaySettings struct {
	// WakeCommand replaces the cursor nudge when non-empty.
	WakeCommand []string

	// SleepCommand replaces the platform display-off command when non-empty.
	SleepCommand []string
}

// JournalSettings controls the action audit trail.
type JournalSettings struct {
	// Enabled records dispatched actions to the on-disk journal.
	Enabled bool

	// Keep is the number of most recent entries retained; 0 keeps every entry.
	Keep int
}

// LogSettings controls the log file destination.
type LogSettings struct {
	// File is the log file path. Empty disables file logging.
	File string
}

// DefaultTimingSettings returns a 5s settle buffer, a 15s sleep delay and a 50ms nudge hold.
func DefaultTimingSettings() TimingSettings {
	return TimingSettings{
		SettleBuffer: 5 * time.Second,
		SleepDelay:   15 * time.Second,
		NudgeHold:    50 * time.Millisecond,
	}
}

// DefaultSettings returns sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Policy: DefaultPolicy(),
		Timing: DefaultTimingSettings(),
		Journal: JournalSettings{
			Enabled: true,
			Keep:    500,
		},
	}
}

// Validate checks the policy invariant and rejects negative durations.
func (s Settings) Validate() error {
	if err := s.Policy.Validate(); err != nil {
		return err
	}
	if s.Timing.SettleBuffer < 0 {
		return fmt.Errorf("%w: settle buffer %s is negative", ErrInvalidInput, s.Timing.SettleBuffer)
	}
	if s.Timing.SleepDelay < 0 {
		return fmt.Errorf("%w: sleep delay %s is negative", ErrInvalidInput, s.Timing.SleepDelay)
	}
	if s.Timing.NudgeHold < 0 {
		return fmt.Errorf("%w: nudge hold %s is negative", ErrInvalidInput, s.Timing.NudgeHold)
	}
	if s.Journal.Keep < 0 {
		return fmt.Errorf("%w: journal keep %d is negative", ErrInvalidInput, s.Journal.Keep)
	}
	return nil
}
