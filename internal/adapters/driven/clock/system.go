// Package clock provides the wall clock used in production.
package clock

import (
	"time"

	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clock = System{}

// System reads the host clock.
type System struct{}

// New returns the system clock.
func New() System {
	return System{}
}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}

// After waits for d of elapsed time.
func (System) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
