// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateHelp      State = "help"
	StateResults   State = "results"
)

// Bar displays the search status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	total   int
	offset  int
	shown   int
	fuzzy   bool
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
		state:  StateReady,
		fuzzy:  true,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op. The bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	fuzzy := "exact"
	if s.fuzzy {
		fuzzy = "fuzzy"
	}

	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateResults:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
		if s.total > 0 {
			return s.styles.Normal.Render(
				fmt.Sprintf("%d-%d of %d results (%s)", s.offset+1, s.offset+s.shown, s.total, fuzzy),
			)
		}
		if s.state == StateResults {
			return s.styles.Muted.Render(fmt.Sprintf("No matches (%s)", fuzzy))
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults && s.total > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message. It replaces the result summary until
// cleared.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPage records the window of results on screen: the first offset,
// how many are shown and the total matched.
func (s *Bar) SetPage(offset, shown, total int) {
	s.offset = offset
	s.shown = shown
	s.total = total
}

// Total returns the total number of matches.
func (s *Bar) Total() int {
	return s.total
}

// SetFuzzy records whether fuzzy matching is on.
func (s *Bar) SetFuzzy(fuzzy bool) {
	s.fuzzy = fuzzy
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.offset = 0
	s.shown = 0
	s.total = 0
}
