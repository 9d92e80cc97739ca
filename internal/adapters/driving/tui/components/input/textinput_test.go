package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
)

func typeText(in *SearchInput, text string) {
	for _, r := range text {
		in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewSearchInput(t *testing.T) {
	in := NewSearchInput(styles.DefaultStyles())

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.Equal(t, "all", in.Scope())
	assert.True(t, in.Focused())
}

func TestNewSearchInput_NilStyles(t *testing.T) {
	in := NewSearchInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
}

func TestSearchInput_Init(t *testing.T) {
	in := NewSearchInput(nil)

	assert.NotNil(t, in.Init())
}

func TestSearchInput_Typing(t *testing.T) {
	in := NewSearchInput(nil)

	typeText(in, "login")

	assert.Equal(t, "login", in.Value())
}

func TestSearchInput_Backspace(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetValue("bugs")

	in.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "bug", in.Value())
}

func TestSearchInput_View(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetScope("task")

	view := in.View()

	assert.Contains(t, view, "Search")
	assert.Contains(t, view, "task")
}

func TestSearchInput_SetScope(t *testing.T) {
	in := NewSearchInput(nil)

	in.SetScope("page")
	assert.Equal(t, "page", in.Scope())

	in.SetScope("")
	assert.Equal(t, "all", in.Scope())
}

func TestSearchInput_FocusAndBlur(t *testing.T) {
	in := NewSearchInput(nil)

	in.Blur()
	assert.False(t, in.Focused())

	cmd := in.Focus()
	assert.NotNil(t, cmd)
	assert.True(t, in.Focused())
}

func TestSearchInput_SetWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		minField int
	}{
		{"wide terminal", 120, 100},
		{"narrow terminal", 10, minInputWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewSearchInput(nil)

			in.SetWidth(tt.width)

			assert.Equal(t, tt.width, in.Width())
			assert.GreaterOrEqual(t, in.textinput.Width, tt.minField)
		})
	}
}

func TestSearchInput_Reset(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetValue("roadmap")

	in.Reset()

	assert.Equal(t, "", in.Value())
}
