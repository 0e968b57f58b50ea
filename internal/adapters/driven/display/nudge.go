package display

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Ensure CursorNudge implements the interface.
var _ driven.WakeAction = (*CursorNudge)(nil)

// Cursor reads and moves the mouse pointer.
type Cursor interface {
	Position() (x, y int32, err error)
	MoveTo(x, y int32) error
}

// CursorNudge wakes the display by moving the pointer one pixel and back.
// The net pointer position is unchanged.
type CursorNudge struct {
	cursor Cursor
	hold   time.Duration
	logger zerolog.Logger
}

// NewCursorNudge creates a nudge that holds the displaced position for hold.
func NewCursorNudge(cursor Cursor, hold time.Duration, logger zerolog.Logger) *CursorNudge {
	return &CursorNudge{
		cursor: cursor,
		hold:   hold,
		logger: logger.With().Str("component", "wake").Logger(),
	}
}

// Wake nudges the cursor. The original position is restored even if ctx is
// cancelled during the hold.
func (n *CursorNudge) Wake(ctx context.Context) error {
	x, y, err := n.cursor.Position()
	if err != nil {
		return fmt.Errorf("%w: read cursor: %w", domain.ErrActionUnavailable, err)
	}

	if err := n.cursor.MoveTo(x+1, y); err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}
	n.logger.Debug().Int32("x", x).Int32("y", y).Msg("cursor nudged")

	if n.hold > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(n.hold):
		}
	}

	if err := n.cursor.MoveTo(x, y); err != nil {
		return fmt.Errorf("restore cursor: %w", err)
	}
	return nil
}
