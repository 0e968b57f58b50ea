// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the status screen.
type KeyMap struct {
	// Quit stops the scheduler and exits.
	Quit key.Binding

	// Wake wakes the display now.
	Wake key.Binding

	// Sleep puts the display to sleep after the usual pre-delay.
	Sleep key.Binding

	// Refresh reloads the history panel.
	Refresh key.Binding

	// Help toggles the full key list.
	Help key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Wake: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wake now"),
		),
		Sleep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sleep now"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Wake, k.Sleep, k.Quit, k.Help}
}

// FullHelp returns every binding, grouped for the help panel.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Wake, k.Sleep},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
