package mcp

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
	"github.com/custodia-labs/taskdex/internal/core/services"
)

var fixtureTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// newSearchService returns an index holding one small workspace.
func newSearchService() *services.SearchService {
	search := services.NewSearchService(domain.DefaultSearchSettings())
	ws := domain.Workspace{ID: "w1", Name: "Engineering"}
	search.IndexTasks(ws, []domain.Task{
		{ID: "1", Title: "Deploy release", Status: "todo", Priority: "high", CreatedAt: fixtureTime},
		{ID: "2", Title: "Write deployment notes", Status: "done", CreatedAt: fixtureTime},
	})
	search.IndexMembers(ws, []domain.Member{{ID: "u1", Name: "Ada Lovelace", CreatedAt: fixtureTime}})
	return search
}

// mockIndexer is a testify mock of driving.WorkspaceIndexer.
type mockIndexer struct {
	mock.Mock
}

var _ driving.WorkspaceIndexer = (*mockIndexer)(nil)

func (m *mockIndexer) Reindex(ctx context.Context, workspaceID string) error {
	return m.Called(ctx, workspaceID).Error(0)
}

func (m *mockIndexer) ReindexAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockIndexer) Import(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *mockIndexer) Watch(ctx context.Context, watcher driven.ChangeWatcher) error {
	return m.Called(ctx, watcher).Error(0)
}

func (m *mockIndexer) Status(workspaceID string) (*driving.IndexStatus, error) {
	args := m.Called(workspaceID)
	status, _ := args.Get(0).(*driving.IndexStatus)
	return status, args.Error(1)
}
