package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/storage/memory"
)

func TestVarName(t *testing.T) {
	assert.Equal(t, "TASKDEX_SEARCH_DEFAULT_LIMIT", VarName("search.default_limit"))
	assert.Equal(t, "TASKDEX_WATCH_MAX_REINDEX_PER_SECOND", VarName("watch.max-reindex-per-second"))
}

func TestConfigStore_OverridesBase(t *testing.T) {
	base := memory.NewConfigStore()
	_ = base.Set("search.default_limit", 20)
	_ = base.Set("server.addr", ":8080")

	t.Setenv("TASKDEX_SEARCH_DEFAULT_LIMIT", "50")
	t.Setenv("TASKDEX_SEARCH_FUZZY_THRESHOLD", "0.5")
	t.Setenv("TASKDEX_WATCH_ENABLED", "true")
	store := New(base, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 50, store.GetInt("search.default_limit"))
	assert.InDelta(t, 0.5, store.GetFloat("search.fuzzy_threshold"), 1e-9)
	assert.True(t, store.GetBool("watch.enabled"))
	assert.Equal(t, ":8080", store.GetString("server.addr"))

	val, ok := store.Get("search.default_limit")
	assert.True(t, ok)
	assert.Equal(t, "50", val)
}

func TestConfigStore_InvalidOverridesReadAsZero(t *testing.T) {
	base := memory.NewConfigStore()
	_ = base.Set("search.default_limit", 20)

	t.Setenv("TASKDEX_SEARCH_DEFAULT_LIMIT", "lots")
	t.Setenv("TASKDEX_SEARCH_FUZZY_THRESHOLD", "high")
	t.Setenv("TASKDEX_WATCH_ENABLED", "sometimes")
	store := New(base, filepath.Join(t.TempDir(), "missing.env"))

	assert.Zero(t, store.GetInt("search.default_limit"))
	assert.Zero(t, store.GetFloat("search.fuzzy_threshold"))
	assert.False(t, store.GetBool("watch.enabled"))
}

func TestConfigStore_EmptyOverrideIgnored(t *testing.T) {
	base := memory.NewConfigStore()
	_ = base.Set("server.addr", ":8080")

	t.Setenv("TASKDEX_SERVER_ADDR", "")
	store := New(base, filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ":8080", store.GetString("server.addr"))
}

func TestConfigStore_LoadsDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TASKDEX_STORAGE_DATA_DIR=/srv/taskdex\n"), 0600))
	t.Setenv("TASKDEX_STORAGE_DATA_DIR", "")
	require.NoError(t, os.Unsetenv("TASKDEX_STORAGE_DATA_DIR"))

	store := New(memory.NewConfigStore(), envFile)

	assert.Equal(t, "/srv/taskdex", store.GetString("storage.data_dir"))
}

func TestConfigStore_WritesGoToBase(t *testing.T) {
	base := memory.NewConfigStore()
	store := New(base, filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, store.Set("server.addr", ":9000"))
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, ":9000", base.GetString("server.addr"))
	assert.Equal(t, base.Path(), store.Path())

	require.NoError(t, store.SetAll(map[string]any{"watch.path": "/exports"}))
	assert.Equal(t, "/exports", base.GetString("watch.path"))
}
