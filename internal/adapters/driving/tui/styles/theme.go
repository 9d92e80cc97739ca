// Package styles provides the colour theme and lipgloss styles shared by
// the TUI and the CLI result renderer.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// Theme is the colour palette.
type Theme struct {
	Accent    lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Subtle    lipgloss.Color
	Surface   lipgloss.Color
	Border    lipgloss.Color
	Match     lipgloss.Color
	Error     lipgloss.Color

	// Types colours the result type badges. Types without an entry use
	// Secondary.
	Types map[domain.ResultType]lipgloss.Color
}

// DefaultTheme returns the default dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#7C3AED"),
		Secondary: lipgloss.Color("#06B6D4"),
		Text:      lipgloss.Color("#CDD6F4"),
		Subtle:    lipgloss.Color("#6C7086"),
		Surface:   lipgloss.Color("#181825"),
		Border:    lipgloss.Color("#45475A"),
		Match:     lipgloss.Color("#F9E2AF"),
		Error:     lipgloss.Color("#F38BA8"),
		Types: map[domain.ResultType]lipgloss.Color{
			domain.ResultTypeTask:   lipgloss.Color("#89B4FA"),
			domain.ResultTypePage:   lipgloss.Color("#A6E3A1"),
			domain.ResultTypeMember: lipgloss.Color("#FAB387"),
		},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Match draws highlighted query terms.
	Match lipgloss.Style

	// Badge labels the search scope; result types use TypeBadge.
	Badge lipgloss.Style

	Facet lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme selects the default.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	text := lipgloss.NewStyle().Foreground(theme.Text)
	subtle := lipgloss.NewStyle().Foreground(theme.Subtle)

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   text,
		Muted:    subtle,
		Selected: text.Bold(true).Background(theme.Accent),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Help:     subtle,

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: subtle.Background(theme.Surface).Padding(0, 1),

		Match: lipgloss.NewStyle().Bold(true).Foreground(theme.Match),
		Badge: badge(theme.Secondary, theme.Surface),
		Facet: lipgloss.NewStyle().Foreground(theme.Secondary),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

func badge(bg, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(bg).Padding(0, 1)
}

// TypeBadge returns the badge style for a result type.
func (s *Styles) TypeBadge(t domain.ResultType) lipgloss.Style {
	if c, ok := s.theme.Types[t]; ok {
		return badge(c, s.theme.Surface)
	}
	return s.Badge
}

// Highlight renders text with every span between the open and close
// markers drawn in the Match style. The markers are removed. An unclosed
// marker is left as plain text.
func (s *Styles) Highlight(text, open, closing string) string {
	if open == "" || closing == "" {
		return text
	}

	var b strings.Builder
	for {
		start := strings.Index(text, open)
		if start < 0 {
			break
		}
		rest := text[start+len(open):]
		end := strings.Index(rest, closing)
		if end < 0 {
			break
		}
		b.WriteString(text[:start])
		b.WriteString(s.Match.Render(rest[:end]))
		text = rest[end+len(closing):]
	}
	b.WriteString(text)
	return b.String()
}
