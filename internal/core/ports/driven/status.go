package driven

import "github.com/custodia-labs/lumen/internal/core/domain"

// StatusSurface displays scheduler status to the user.
// It is write-only from the scheduler's point of view; quitting is signalled
// back through context cancellation, never through this interface.
type StatusSurface interface {
	// SetStatus replaces the displayed status. Must not block.
	SetStatus(status domain.Status)
}
