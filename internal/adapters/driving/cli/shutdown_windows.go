//go:build windows

package cli

import (
	"context"
	"os"
	"os/signal"
)

// setupShutdownHandler returns a context derived from parent that is
// cancelled when an interrupt is received. Windows has no SIGTERM.
func setupShutdownHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
		cancel()
	}()

	return ctx, cancel
}
