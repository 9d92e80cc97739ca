package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Nil(t, bar.Init())
}

func TestNewBar_NilArgs(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *Bar)
		want    []string
		notWant []string
	}{
		{
			name:  "ready",
			setup: func(_ *Bar) {},
			want:  []string{"Ready", "f1: help"},
		},
		{
			name:  "searching",
			setup: func(b *Bar) { b.SetState(StateSearching) },
			want:  []string{"Searching..."},
		},
		{
			name: "error with message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("boom")
			},
			want: []string{"Error: boom"},
		},
		{
			name:  "error without message",
			setup: func(b *Bar) { b.SetState(StateError) },
			want:  []string{"Error"},
		},
		{
			name: "results page",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetPage(20, 5, 25)
			},
			want: []string{"21-25 of 25 results (fuzzy)", "tab: type"},
		},
		{
			name: "no matches exact",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetFuzzy(false)
			},
			want:    []string{"No matches (exact)"},
			notWant: []string{"tab: type"},
		},
		{
			name: "message replaces summary",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetPage(0, 1, 1)
				b.SetMessage("Filter: task")
			},
			want:    []string{"Filter: task"},
			notWant: []string{"of 1 results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			tt.setup(bar)

			view := bar.View()

			for _, w := range tt.want {
				assert.Contains(t, view, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, view, w)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateResults)
	bar.SetMessage("hello")
	bar.SetPage(10, 10, 30)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.Total())
}

func TestBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(nil)

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}
