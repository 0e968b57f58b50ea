// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lumen/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lumen/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lumen/internal/core/domain"
)

// Bar displays the scheduler phase and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	status  domain.Status
	message string
	isError bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		status: domain.Status{Phase: domain.PhaseStarting},
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Passive; updated via Set methods
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft shows a transient message if set, else the phase.
func (b *Bar) renderLeft() string {
	if b.message != "" {
		if b.isError {
			return b.styles.Error.Render(b.message)
		}
		return b.styles.Normal.Render(b.message)
	}

	switch b.status.Phase {
	case domain.PhaseFailed:
		return b.styles.Error.Render(b.status.String())
	case domain.PhaseDispatching:
		return b.styles.ForAction(b.status.Next.Kind).Render(b.status.String())
	case domain.PhaseWaiting:
		return b.styles.Normal.Render(b.status.String())
	case domain.PhaseStarting, domain.PhaseStopped:
		return b.styles.Muted.Render(b.status.String())
	}
	return b.styles.Muted.Render(b.status.String())
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetStatus records the latest scheduler status.
func (b *Bar) SetStatus(status domain.Status) {
	b.status = status
}

// Status returns the latest scheduler status.
func (b *Bar) Status() domain.Status {
	return b.status
}

// SetMessage shows a message in place of the phase until cleared.
func (b *Bar) SetMessage(message string, isError bool) {
	b.message = message
	b.isError = isError
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear removes any message.
func (b *Bar) Clear() {
	b.message = ""
	b.isError = false
}
