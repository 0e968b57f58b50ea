//go:build !windows

package display

import (
	"fmt"
	"runtime"

	"github.com/custodia-labs/lumen/internal/core/domain"
)

// systemCursor is only implemented on Windows; elsewhere waking uses a command.
type systemCursor struct{}

func (systemCursor) Position() (int32, int32, error) {
	return 0, 0, fmt.Errorf("%w: cursor control on %s", domain.ErrActionUnavailable, runtime.GOOS)
}

func (systemCursor) MoveTo(_, _ int32) error {
	return fmt.Errorf("%w: cursor control on %s", domain.ErrActionUnavailable, runtime.GOOS)
}
