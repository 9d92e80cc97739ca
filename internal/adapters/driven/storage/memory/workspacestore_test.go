package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

func testSnapshot(id string) *domain.WorkspaceSnapshot {
	return &domain.WorkspaceSnapshot{
		Workspace: domain.Workspace{ID: id, Name: "Workspace " + id},
		Tasks:     []domain.Task{{ID: "t1", Title: "Fix login bug"}},
		Pages:     []domain.Page{{ID: "p1", Title: "Onboarding"}},
		Members:   []domain.Member{{ID: "m1", Name: "Jane Doe"}},
	}
}

func TestWorkspaceStore_SaveAndGet(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("ws1")))

	ws, err := store.GetWorkspace(ctx, "ws1")
	require.NoError(t, err)
	assert.Equal(t, "Workspace ws1", ws.Name)

	tasks, err := store.ListTasks(ctx, "ws1")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	pages, err := store.ListPages(ctx, "ws1")
	require.NoError(t, err)
	assert.Len(t, pages, 1)

	members, err := store.ListMembers(ctx, "ws1")
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestWorkspaceStore_SaveSnapshot_Replaces(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("ws1")))

	updated := testSnapshot("ws1")
	updated.Tasks = nil
	require.NoError(t, store.SaveSnapshot(ctx, updated))

	tasks, err := store.ListTasks(ctx, "ws1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestWorkspaceStore_SaveSnapshot_RejectsForeignIDs(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("ws1")))

	err := store.SaveSnapshot(ctx, testSnapshot("ws2"))

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "task-t1")
	_, err = store.GetWorkspace(ctx, "ws2")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)

	// The owner may still replace its own records.
	assert.NoError(t, store.SaveSnapshot(ctx, testSnapshot("ws1")))

	// Once the owner is gone the id is free.
	require.NoError(t, store.DeleteWorkspace(ctx, "ws1"))
	assert.NoError(t, store.SaveSnapshot(ctx, testSnapshot("ws2")))
}

func TestWorkspaceStore_SaveSnapshot_Invalid(t *testing.T) {
	store := NewWorkspaceStore()

	err := store.SaveSnapshot(context.Background(), &domain.WorkspaceSnapshot{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkspaceStore_ListTasks_ReturnsCopy(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("ws1")))

	tasks, _ := store.ListTasks(ctx, "ws1")
	tasks[0].Title = "mutated"

	again, _ := store.ListTasks(ctx, "ws1")
	assert.Equal(t, "Fix login bug", again[0].Title)
}

func TestWorkspaceStore_ListWorkspaces_Sorted(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()
	for _, id := range []string{"b", "a"} {
		snap := &domain.WorkspaceSnapshot{Workspace: domain.Workspace{ID: id}}
		require.NoError(t, store.SaveSnapshot(ctx, snap))
	}

	workspaces, err := store.ListWorkspaces(ctx)
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, "a", workspaces[0].ID)
	assert.Equal(t, "b", workspaces[1].ID)
}

func TestWorkspaceStore_NotFound(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()

	_, err := store.GetWorkspace(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)

	_, err = store.ListTasks(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)

	_, err = store.ListPages(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)

	_, err = store.ListMembers(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)

	assert.ErrorIs(t, store.DeleteWorkspace(ctx, "missing"), domain.ErrWorkspaceNotFound)
}

func TestWorkspaceStore_DeleteWorkspace(t *testing.T) {
	store := NewWorkspaceStore()
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("ws1")))

	require.NoError(t, store.DeleteWorkspace(ctx, "ws1"))

	_, err := store.GetWorkspace(ctx, "ws1")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}
