// Package input provides the query input component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
)

// minInputWidth is the narrowest the text field is drawn.
const minInputWidth = 20

// SearchInput wraps a bubbles textinput with a scope badge showing the
// active result type filter.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	scope     string
	width     int
}

// NewSearchInput creates a focused query input.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search tasks, pages and members..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		scope:     "all",
		width:     50,
	}
}

// Init starts the cursor blink.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text field.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the label, scope badge and text field.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search ")
	badge := s.styles.Badge.Render(s.scope)
	field := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, badge, " ", field)
}

// Value returns the current query text.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the query text.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Scope returns the badge label.
func (s *SearchInput) Scope() string {
	return s.scope
}

// SetScope sets the badge label. Empty resets it to "all".
func (s *SearchInput) SetScope(scope string) {
	if scope == "" {
		scope = "all"
	}
	s.scope = scope
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the total width, leaving room for the label and badge.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	inputWidth := width - 10 - lipgloss.Width(s.styles.Badge.Render(s.scope))
	if inputWidth < minInputWidth {
		inputWidth = minInputWidth
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the query text.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
