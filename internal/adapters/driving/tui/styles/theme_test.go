package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

func TestDefaultTheme_TypeColoursDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]domain.ResultType)
	for _, rt := range []domain.ResultType{domain.ResultTypeTask, domain.ResultTypePage, domain.ResultTypeMember} {
		c, ok := theme.Types[rt]
		require.True(t, ok, "no colour for %s", rt)
		prev, dup := seen[c]
		assert.False(t, dup, "%s and %s share a colour", rt, prev)
		seen[c] = rt
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.theme)
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title": s.Title, "Subtitle": s.Subtitle, "Normal": s.Normal, "Muted": s.Muted,
		"Selected": s.Selected, "Error": s.Error, "Help": s.Help,
		"InputField": s.InputField, "StatusBar": s.StatusBar,
		"Match": s.Match, "Badge": s.Badge, "Facet": s.Facet,
	} {
		assert.NotEqual(t, lipgloss.Style{}, style, name)
		assert.NotEmpty(t, style.Render("text"), name)
	}
}

func TestStyles_TypeBadge(t *testing.T) {
	s := DefaultStyles()
	theme := DefaultTheme()

	assert.Equal(t, theme.Types[domain.ResultTypeTask], s.TypeBadge(domain.ResultTypeTask).GetBackground())
	assert.Equal(t, theme.Types[domain.ResultTypeMember], s.TypeBadge(domain.ResultTypeMember).GetBackground())
	assert.Equal(t, s.Badge, s.TypeBadge(domain.ResultTypeComment), "reserved types use the scope badge")
}

func TestStyles_Highlight(t *testing.T) {
	s := DefaultStyles()
	mark := s.Match.Render("login")

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no markers", "fix the login bug", "fix the login bug"},
		{"single span", "fix the <mark>login</mark> bug", "fix the " + mark + " bug"},
		{"two spans", "<mark>login</mark> and <mark>login</mark>", mark + " and " + mark},
		{"unclosed marker", "fix <mark>login bug", "fix <mark>login bug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Highlight(tt.text, "<mark>", "</mark>"))
		})
	}
}

func TestStyles_Highlight_EmptyMarkers(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, "<mark>x</mark>", s.Highlight("<mark>x</mark>", "", ""))
}
