// Package status provides the headless status surface.
package status

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/lumen/internal/core/domain"
	"github.com/custodia-labs/lumen/internal/core/ports/driven"
)

// Ensure LogSurface implements the interface.
var _ driven.StatusSurface = (*LogSurface)(nil)

// LogSurface reports status changes as log lines. Repeats of the same status
// are dropped.
type LogSurface struct {
	mu     sync.Mutex
	last   string
	logger zerolog.Logger
}

// NewLogSurface creates a surface writing to logger.
func NewLogSurface(logger zerolog.Logger) *LogSurface {
	return &LogSurface{logger: logger.With().Str("component", "status").Logger()}
}

// SetStatus implements driven.StatusSurface.
func (s *LogSurface) SetStatus(status domain.Status) {
	line := status.String()

	s.mu.Lock()
	if line == s.last {
		s.mu.Unlock()
		return
	}
	s.last = line
	s.mu.Unlock()

	event := s.logger.Info()
	if status.Phase == domain.PhaseFailed {
		event = s.logger.Error()
	}
	event.Str("phase", string(status.Phase)).Msg(line)
}
