package driven

import "context"

// WakeAction revives display output, typically by simulating input.
// Implementations are best-effort and idempotent.
type WakeAction interface {
	// Wake nudges the display awake.
	Wake(ctx context.Context) error
}

// SleepAction powers the display off.
// Any pre-delay is applied by the caller, not the implementation.
type SleepAction interface {
	// Sleep turns the display off.
	Sleep(ctx context.Context) error
}
