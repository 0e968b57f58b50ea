package driven

import "time"

// Clock provides wall-clock time and timers.
// Core services depend on this interface rather than calling time.Now directly
// so waits can be driven deterministically in tests.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time

	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}
