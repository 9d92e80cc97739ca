package driven

import (
	"context"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// ChangeWatcher reports workspaces whose backing data changed.
type ChangeWatcher interface {
	// Watch starts emitting changes until the context is cancelled.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.WorkspaceChange, error)

	// Close releases resources.
	Close() error
}
