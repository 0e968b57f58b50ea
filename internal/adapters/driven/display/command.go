package display

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Ensure command actions implement the interfaces.
var (
	_ driven.WakeAction  = (*WakeCommand)(nil)
	_ driven.SleepAction = (*SleepCommand)(nil)
)

// maxOutput bounds how much command output is carried into an error.
const maxOutput = 200

// command runs an argv with the caller's context.
type command struct {
	argv   []string
	logger zerolog.Logger
}

func (c command) run(ctx context.Context) error {
	if len(c.argv) == 0 {
		return fmt.Errorf("%w: no command configured", domain.ErrActionUnavailable)
	}

	name := c.argv[0]
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrActionUnavailable, name, err)
	}

	c.logger.Debug().Strs("argv", c.argv).Msg("running display command")
	cmd := exec.CommandContext(ctx, name, c.argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with %d: %s", name, exitErr.ExitCode(), trimOutput(out))
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func trimOutput(out []byte) string {
	s := strings.TrimSpace(string(out))
	if len(s) > maxOutput {
		s = s[:maxOutput] + "..."
	}
	return s
}

// WakeCommand wakes the display by running an external command.
type WakeCommand struct {
	command
}

// NewWakeCommand creates a wake action running argv.
func NewWakeCommand(argv []string, logger zerolog.Logger) *WakeCommand {
	return &WakeCommand{command{argv: argv, logger: logger.With().Str("component", "wake").Logger()}}
}

// Wake runs the command.
func (w *WakeCommand) Wake(ctx context.Context) error {
	return w.run(ctx)
}

// SleepCommand puts the display to sleep by running an external command.
type SleepCommand struct {
	command
}

// NewSleepCommand creates a sleep action running argv.
func NewSleepCommand(argv []string, logger zerolog.Logger) *SleepCommand {
	return &SleepCommand{command{argv: argv, logger: logger.With().Str("component", "sleep").Logger()}}
}

// Sleep runs the command.
func (s *SleepCommand) Sleep(ctx context.Context) error {
	return s.run(ctx)
}
