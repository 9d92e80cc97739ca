package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "Ctrl+F")
}

func TestNewTUIApp_LoadsIndex(t *testing.T) {
	setupTestServices(t)
	tuiCmd.SetContext(context.Background())

	app, err := newTUIApp(tuiCmd)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, 5, searchService.Stats().Documents)
}

func TestNewTUIApp_RequiresSearch(t *testing.T) {
	SetServices(Services{})
	tuiCmd.SetContext(context.Background())

	_, err := newTUIApp(tuiCmd)

	assert.ErrorIs(t, err, tui.ErrMissingSearchService)
}
