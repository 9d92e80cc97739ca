package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
)

// WorkspaceIndexer loads workspace collections from the store and feeds
// them into the search index.
type WorkspaceIndexer interface {
	// Reindex rebuilds the index slice of one workspace.
	Reindex(ctx context.Context, workspaceID string) error

	// ReindexAll rebuilds the index for every known workspace.
	ReindexAll(ctx context.Context) error

	// Import saves a snapshot to the store and reindexes its workspace.
	Import(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error

	// Watch reindexes workspaces as the watcher reports changes.
	// It blocks until the context is cancelled or the watcher stops.
	Watch(ctx context.Context, watcher driven.ChangeWatcher) error

	// Status returns the last indexing status for a workspace.
	Status(workspaceID string) (*IndexStatus, error)
}

// IndexStatus represents the state of the last indexing run of a workspace.
type IndexStatus struct {
	// WorkspaceID identifies the workspace.
	WorkspaceID string

	// Running indicates if indexing is currently in progress.
	Running bool

	// Tasks, Pages and Members count the records indexed by the last run.
	Tasks   int
	Pages   int
	Members int

	// LastIndexed is when the last run completed.
	LastIndexed time.Time

	// LastError is the error of the last run, if any.
	LastError error
}
