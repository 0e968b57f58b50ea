package driving

import "context"

// Scheduler drives the display through its weekly sleep/wake cycle.
type Scheduler interface {
	// Start validates the policy, performs start-up catch-up and runs the
	// compute/wait/dispatch loop. Blocks until ctx is cancelled, Stop is
	// called, or start-up validation fails.
	Start(ctx context.Context) error

	// Stop ends the loop at its next suspension point.
	Stop() error
}
