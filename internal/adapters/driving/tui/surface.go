package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lumen/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Ensure Surface implements the interface.
var _ driven.StatusSurface = (*Surface)(nil)

// Surface forwards scheduler status into a running Bubbletea program.
// Statuses published before the program starts are held back and the most
// recent one is delivered once it does.
type Surface struct {
	mu      sync.Mutex
	program *tea.Program
	pending *domain.Status
}

// NewSurface creates an unattached surface.
func NewSurface() *Surface {
	return &Surface{}
}

// SetStatus implements driven.StatusSurface.
func (s *Surface) SetStatus(status domain.Status) {
	s.mu.Lock()
	p := s.program
	if p == nil {
		s.pending = &status
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Send returns immediately once the program has exited.
	p.Send(messages.StatusChanged{Status: status})
}

// Run drives app until the user quits or ctx is cancelled.
func (s *Surface) Run(ctx context.Context, app *App, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(app.WithContext(ctx), opts...)

	s.mu.Lock()
	if s.pending != nil {
		// The program is not running yet, so the model can be updated directly.
		app.Update(messages.StatusChanged{Status: *s.pending})
		s.pending = nil
	}
	s.program = p
	s.mu.Unlock()

	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	_, err := p.Run()
	close(done)
	return err
}

// Quit asks a running program to exit.
func (s *Surface) Quit() {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}
