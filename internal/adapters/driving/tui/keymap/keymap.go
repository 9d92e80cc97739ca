// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// The query input keeps focus, so no binding uses a printable key.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back clears the query, or leaves the help view.
	Back key.Binding

	// Up moves the result selection up.
	Up key.Binding

	// Down moves the result selection down.
	Down key.Binding

	// NextPage requests the next page of results.
	NextPage key.Binding

	// PrevPage requests the previous page of results.
	PrevPage key.Binding

	// CycleType cycles the result type filter.
	CycleType key.Binding

	// ToggleFuzzy switches fuzzy matching on and off.
	ToggleFuzzy key.Binding

	// Reindex reloads every workspace from the store.
	Reindex key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "prev page"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "type"),
		),
		ToggleFuzzy: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "fuzzy"),
		),
		Reindex: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reindex"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// ResultsHelp returns keybindings shown while results are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.CycleType, k.NextPage, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.CycleType, k.ToggleFuzzy, k.Reindex, k.Back},
		{k.Help, k.Quit},
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
