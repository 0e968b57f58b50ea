package display

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lumen/internal/core/domain"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == osWindows {
		t.Skip("uses unix shell commands")
	}
}

func TestSleepCommand_Success(t *testing.T) {
	skipOnWindows(t)

	action := NewSleepCommand([]string{"true"}, zerolog.Nop())

	assert.NoError(t, action.Sleep(context.Background()))
}

func TestWakeCommand_Success(t *testing.T) {
	skipOnWindows(t)

	action := NewWakeCommand([]string{"sh", "-c", "exit 0"}, zerolog.Nop())

	assert.NoError(t, action.Wake(context.Background()))
}

func TestCommand_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	action := NewSleepCommand([]string{"sh", "-c", "echo no display >&2; exit 3"}, zerolog.Nop())

	err := action.Sleep(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with 3")
	assert.Contains(t, err.Error(), "no display")
	assert.NotErrorIs(t, err, domain.ErrActionUnavailable)
}

func TestCommand_NotFound(t *testing.T) {
	action := NewSleepCommand([]string{"lumen-no-such-binary-xyz"}, zerolog.Nop())

	err := action.Sleep(context.Background())

	assert.ErrorIs(t, err, domain.ErrActionUnavailable)
}

func TestCommand_Empty(t *testing.T) {
	action := NewWakeCommand(nil, zerolog.Nop())

	err := action.Wake(context.Background())

	assert.ErrorIs(t, err, domain.ErrActionUnavailable)
}

func TestCommand_Cancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	action := NewSleepCommand([]string{"sleep", "5"}, zerolog.Nop())

	err := action.Sleep(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTrimOutput(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	assert.Equal(t, "short", trimOutput([]byte("  short\n")))
	assert.Len(t, trimOutput(long), maxOutput+3)
}

func TestDefaultCommands(t *testing.T) {
	tests := []struct {
		goos  string
		sleep []string
		wake  []string
	}{
		{goos: "windows", sleep: []string{"doff.exe"}, wake: nil},
		{goos: "darwin", sleep: []string{"pmset", "displaysleepnow"}, wake: []string{"caffeinate", "-u", "-t", "1"}},
		{goos: "linux", sleep: []string{"xset", "dpms", "force", "off"}, wake: []string{"xset", "dpms", "force", "on"}},
		{goos: "freebsd", sleep: []string{"xset", "dpms", "force", "off"}, wake: []string{"xset", "dpms", "force", "on"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.sleep, defaultSleepCommand(tt.goos))
			assert.Equal(t, tt.wake, defaultWakeCommand(tt.goos))
		})
	}
}

func TestNewWakeAction(t *testing.T) {
	t.Run("configured command wins", func(t *testing.T) {
		action := NewWakeAction(domain.DisplaySettings{WakeCommand: []string{"wake.sh"}}, time.Millisecond, zerolog.Nop())

		cmd, ok := action.(*WakeCommand)
		require.True(t, ok)
		assert.Equal(t, []string{"wake.sh"}, cmd.argv)
	})

	t.Run("platform default", func(t *testing.T) {
		action := NewWakeAction(domain.DisplaySettings{}, time.Millisecond, zerolog.Nop())

		if runtime.GOOS == osWindows {
			assert.IsType(t, &CursorNudge{}, action)
		} else {
			cmd, ok := action.(*WakeCommand)
			require.True(t, ok)
			assert.Equal(t, DefaultWakeCommand(), cmd.argv)
		}
	})
}

func TestNewSleepAction(t *testing.T) {
	configured := NewSleepAction(domain.DisplaySettings{SleepCommand: []string{"off.sh", "-now"}}, zerolog.Nop())
	fallback := NewSleepAction(domain.DisplaySettings{}, zerolog.Nop())

	assert.Equal(t, []string{"off.sh", "-now"}, configured.(*SleepCommand).argv)
	assert.Equal(t, DefaultSleepCommand(), fallback.(*SleepCommand).argv)
}

// fakeCursor records every move.
type fakeCursor struct {
	x, y     int32
	moves    [][2]int32
	readErr  error
	moveErrs []error
}

func (c *fakeCursor) Position() (int32, int32, error) {
	return c.x, c.y, c.readErr
}

func (c *fakeCursor) MoveTo(x, y int32) error {
	c.moves = append(c.moves, [2]int32{x, y})
	if len(c.moveErrs) > 0 {
		err := c.moveErrs[0]
		c.moveErrs = c.moveErrs[1:]
		if err != nil {
			return err
		}
	}
	c.x, c.y = x, y
	return nil
}

func TestCursorNudge_MovesAndRestores(t *testing.T) {
	cursor := &fakeCursor{x: 640, y: 480}
	nudge := NewCursorNudge(cursor, time.Millisecond, zerolog.Nop())

	require.NoError(t, nudge.Wake(context.Background()))

	assert.Equal(t, [][2]int32{{641, 480}, {640, 480}}, cursor.moves)
	assert.Equal(t, int32(640), cursor.x)
	assert.Equal(t, int32(480), cursor.y)
}

func TestCursorNudge_RestoresWhenCancelled(t *testing.T) {
	cursor := &fakeCursor{x: 10, y: 20}
	nudge := NewCursorNudge(cursor, time.Hour, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, nudge.Wake(ctx))

	assert.Equal(t, [][2]int32{{11, 20}, {10, 20}}, cursor.moves)
}

func TestCursorNudge_ReadError(t *testing.T) {
	cursor := &fakeCursor{readErr: errors.New("access denied")}
	nudge := NewCursorNudge(cursor, 0, zerolog.Nop())

	err := nudge.Wake(context.Background())

	assert.ErrorIs(t, err, domain.ErrActionUnavailable)
	assert.Empty(t, cursor.moves)
}

func TestCursorNudge_MoveErrors(t *testing.T) {
	t.Run("nudge", func(t *testing.T) {
		cursor := &fakeCursor{moveErrs: []error{errors.New("blocked")}}

		err := NewCursorNudge(cursor, 0, zerolog.Nop()).Wake(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "move cursor")
		assert.Len(t, cursor.moves, 1)
	})

	t.Run("restore", func(t *testing.T) {
		cursor := &fakeCursor{moveErrs: []error{nil, errors.New("blocked")}}

		err := NewCursorNudge(cursor, 0, zerolog.Nop()).Wake(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "restore cursor")
	})
}
