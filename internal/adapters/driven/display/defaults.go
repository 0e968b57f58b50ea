package display

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

const (
	osDarwin  = "darwin"
	osWindows = "windows"
)

// DefaultSleepCommand returns the platform's display-off command.
func DefaultSleepCommand() []string {
	return defaultSleepCommand(runtime.GOOS)
}

func defaultSleepCommand(goos string) []string {
	switch goos {
	case osWindows:
		return []string{"doff.exe"}
	case osDarwin:
		return []string{"pmset", "displaysleepnow"}
	default:
		return []string{"xset", "dpms", "force", "off"}
	}
}

// DefaultWakeCommand returns the platform's display-on command, or nil where
// the cursor nudge is used instead.
func DefaultWakeCommand() []string {
	return defaultWakeCommand(runtime.GOOS)
}

func defaultWakeCommand(goos string) []string {
	switch goos {
	case osWindows:
		return nil
	case osDarwin:
		return []string{"caffeinate", "-u", "-t", "1"}
	default:
		return []string{"xset", "dpms", "force", "on"}
	}
}

// NewWakeAction returns the configured wake command, falling back to the
// platform default.
func NewWakeAction(settings domain.DisplaySettings, hold time.Duration, logger zerolog.Logger) driven.WakeAction {
	if len(settings.WakeCommand) > 0 {
		return NewWakeCommand(settings.WakeCommand, logger)
	}
	if argv := DefaultWakeCommand(); argv != nil {
		return NewWakeCommand(argv, logger)
	}
	return NewCursorNudge(systemCursor{}, hold, logger)
}

// NewSleepAction returns the configured sleep command, falling back to the
// platform default.
func NewSleepAction(settings domain.DisplaySettings, logger zerolog.Logger) driven.SleepAction {
	if len(settings.SleepCommand) > 0 {
		return NewSleepCommand(settings.SleepCommand, logger)
	}
	return NewSleepCommand(DefaultSleepCommand(), logger)
}
