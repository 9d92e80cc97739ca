package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/services"
)

func TestIndexCmd_All(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "index")

	require.NoError(t, err)
	assert.Contains(t, out, "w1: 2 tasks, 1 pages, 1 members (indexed ")
	assert.Contains(t, out, "w2: 1 tasks, 0 pages, 0 members (indexed ")
}

func TestIndexCmd_One(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "index", "w2")

	require.NoError(t, err)
	assert.Contains(t, out, "w2: 1 tasks")
	assert.NotContains(t, out, "w1:")
}

func TestIndexCmd_UnknownWorkspace(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "index", "nope")

	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestIndexCmd_EmptyStore(t *testing.T) {
	store := memory.NewWorkspaceStore()
	search := services.NewSearchService(domain.DefaultSearchSettings())
	SetServices(Services{
		Search:  search,
		Indexer: services.NewIndexerService(store, search, nil, 0),
		Store:   store,
	})
	t.Cleanup(func() { SetServices(Services{}) })

	out, err := execute(t, "index")

	require.NoError(t, err)
	assert.Contains(t, out, "No workspaces stored")
}

func TestIndexCmd_NotConfigured(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "index")

	assert.ErrorIs(t, err, errIndexerNotConfigured)
}
