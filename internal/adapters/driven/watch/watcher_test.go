package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
)

const eventTimeout = 2 * time.Second

func writeExport(t *testing.T, path, id, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(exportBody(id, name)), 0o600))
}

func exportBody(id, name string) string {
	return `{"workspace": {"id": "` + id + `", "name": "` + name + `"}, "tasks": [{"id": "` + id + `-t1", "title": "Deploy"}]}`
}

func nextChange(t *testing.T, changes <-chan domain.WorkspaceChange) domain.WorkspaceChange {
	t.Helper()
	select {
	case change, ok := <-changes:
		require.True(t, ok, "channel closed unexpectedly")
		return change
	case <-time.After(eventTimeout):
		t.Fatal("timeout waiting for workspace change")
	}
	return domain.WorkspaceChange{}
}

func TestNew(t *testing.T) {
	w := New("/tmp/exports", memory.NewWorkspaceStore())
	require.NotNil(t, w)
	assert.Equal(t, "/tmp/exports", w.Dir())

	var _ driven.ChangeWatcher = w
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("imports existing exports on start", func(t *testing.T) {
		dir := t.TempDir()
		writeExport(t, filepath.Join(dir, "w1.json"), "w1", "Engineering")
		store := memory.NewWorkspaceStore()

		w := New(dir, store)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		change := nextChange(t, changes)
		assert.Equal(t, domain.WorkspaceChange{WorkspaceID: "w1", Type: domain.ChangeCreated}, change)

		ws, err := store.GetWorkspace(ctx, "w1")
		require.NoError(t, err)
		assert.Equal(t, "Engineering", ws.Name)
	})

	t.Run("imports new exports before emitting", func(t *testing.T) {
		dir := t.TempDir()
		store := memory.NewWorkspaceStore()

		w := New(dir, store)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(filepath.Join(dir, "w2.json"), []byte(exportBody("w2", "Marketing")), 0o600)
		}()

		change := nextChange(t, changes)
		assert.Equal(t, "w2", change.WorkspaceID)
		assert.NotEqual(t, domain.ChangeDeleted, change.Type)

		tasks, err := store.ListTasks(ctx, "w2")
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("emits deletion on remove", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "export.json")
		writeExport(t, path, "w3", "Design")

		w := New(dir, memory.NewWorkspaceStore())
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)
		require.Equal(t, domain.ChangeCreated, nextChange(t, changes).Type)

		require.NoError(t, os.Remove(path))

		// The id comes from the imported content, not the file name.
		for {
			change := nextChange(t, changes)
			if change.Type == domain.ChangeDeleted {
				assert.Equal(t, "w3", change.WorkspaceID)
				return
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		w := New("/non/existent/path", memory.NewWorkspaceStore())

		changes, err := w.Watch(context.Background())
		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "watch path error")
	})

	t.Run("returns error for a file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "w1.json")
		writeExport(t, path, "w1", "Engineering")

		_, err := New(path, memory.NewWorkspaceStore()).Watch(context.Background())
		assert.ErrorContains(t, err, "not a directory")
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		w := New(t.TempDir(), memory.NewWorkspaceStore())
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := w.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(eventTimeout):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("closes channel when watcher is closed", func(t *testing.T) {
		w := New(t.TempDir(), memory.NewWorkspaceStore())

		changes, err := w.Watch(context.Background())
		require.NoError(t, err)
		require.NoError(t, w.Close())

		select {
		case _, ok := <-changes:
			assert.False(t, ok)
		case <-time.After(eventTimeout):
			t.Fatal("channel did not close after Close")
		}
	})

	t.Run("returns error when watcher is closed", func(t *testing.T) {
		w := New(t.TempDir(), memory.NewWorkspaceStore())
		require.NoError(t, w.Close())

		changes, err := w.Watch(context.Background())
		assert.ErrorIs(t, err, domain.ErrWatcherClosed)
		assert.Nil(t, changes)
	})
}

func TestWatcher_Close(t *testing.T) {
	w := New(t.TempDir(), memory.NewWorkspaceStore())

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name          string
		file          string
		content       string
		operation     fsnotify.Op
		wantChange    bool
		wantType      domain.ChangeType
		wantWorkspace string
	}{
		{
			name:          "create export",
			file:          "w1.json",
			content:       `{"workspace": {"id": "w1"}}`,
			operation:     fsnotify.Create,
			wantChange:    true,
			wantType:      domain.ChangeCreated,
			wantWorkspace: "w1",
		},
		{
			name:          "write export",
			file:          "w1.json",
			content:       `{"workspace": {"id": "w1"}}`,
			operation:     fsnotify.Write,
			wantChange:    true,
			wantType:      domain.ChangeUpdated,
			wantWorkspace: "w1",
		},
		{
			name:          "write and chmod",
			file:          "w1.json",
			content:       `{"workspace": {"id": "w1"}}`,
			operation:     fsnotify.Write | fsnotify.Chmod,
			wantChange:    true,
			wantType:      domain.ChangeUpdated,
			wantWorkspace: "w1",
		},
		{
			name:          "remove unknown export uses file name",
			file:          "gone.json",
			operation:     fsnotify.Remove,
			wantChange:    true,
			wantType:      domain.ChangeDeleted,
			wantWorkspace: "gone",
		},
		{
			name:          "rename away",
			file:          "moved.json",
			operation:     fsnotify.Rename,
			wantChange:    true,
			wantType:      domain.ChangeDeleted,
			wantWorkspace: "moved",
		},
		{
			name:      "chmod only",
			file:      "w1.json",
			content:   `{"workspace": {"id": "w1"}}`,
			operation: fsnotify.Chmod,
		},
		{
			name:      "partial write",
			file:      "w1.json",
			content:   `{"workspace": `,
			operation: fsnotify.Write,
		},
		{
			name:      "hidden file",
			file:      ".w1.json",
			content:   `{"workspace": {"id": "w1"}}`,
			operation: fsnotify.Create,
		},
		{
			name:      "non-json file",
			file:      "notes.txt",
			content:   "hello",
			operation: fsnotify.Create,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			w := New(dir, memory.NewWorkspaceStore())
			change := w.handleFsEvent(context.Background(), fsnotify.Event{Name: path, Op: tt.operation})

			if !tt.wantChange {
				assert.Nil(t, change)
				return
			}
			require.NotNil(t, change)
			assert.Equal(t, tt.wantType, change.Type)
			assert.Equal(t, tt.wantWorkspace, change.WorkspaceID)
		})
	}

	t.Run("directory named like an export", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "folder.json")
		require.NoError(t, os.Mkdir(path, 0o755))

		w := New(dir, memory.NewWorkspaceStore())
		assert.Nil(t, w.handleFsEvent(context.Background(), fsnotify.Event{Name: path, Op: fsnotify.Create}))
	})
}
