package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"help", km.Help, []string{"f1"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "ctrl+p"}},
		{"down", km.Down, []string{"down", "ctrl+n"}},
		{"next page", km.NextPage, []string{"pgdown"}},
		{"prev page", km.PrevPage, []string{"pgup"}},
		{"cycle type", km.CycleType, []string{"tab"}},
		{"toggle fuzzy", km.ToggleFuzzy, []string{"ctrl+f"}},
		{"reindex", km.Reindex, []string{"ctrl+r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_NoPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				assert.Greater(t, len([]rune(k)), 1, "printable key %q would be swallowed by the query input", k)
			}
		}
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 2)
	assert.Equal(t, km.Help.Keys(), bindings[0].Keys())
	assert.Equal(t, km.Quit.Keys(), bindings[1].Keys())
}

func TestResultsHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ResultsHelp()

	assert.Len(t, bindings, 5)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 3)
	assert.Len(t, groups[0], 4)
	assert.Len(t, groups[1], 4)
	assert.Len(t, groups[2], 2)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("tab", km.CycleType))
	assert.True(t, Matches("ctrl+p", km.Up))
	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("", km.Help))
}
