package driven

import (
	"context"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// WorkspaceStore supplies fully-materialised workspace collections.
// It stands in for the hosted backend the product fetches from.
type WorkspaceStore interface {
	// ListWorkspaces returns every known workspace.
	ListWorkspaces(ctx context.Context) ([]domain.Workspace, error)

	// GetWorkspace retrieves a workspace by ID.
	// Returns domain.ErrWorkspaceNotFound if it does not exist.
	GetWorkspace(ctx context.Context, id string) (*domain.Workspace, error)

	// ListTasks returns the tasks of a workspace.
	ListTasks(ctx context.Context, workspaceID string) ([]domain.Task, error)

	// ListPages returns the pages of a workspace.
	ListPages(ctx context.Context, workspaceID string) ([]domain.Page, error)

	// ListMembers returns the members of a workspace.
	ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error)

	// SaveSnapshot replaces a workspace and all its collections.
	SaveSnapshot(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error

	// DeleteWorkspace removes a workspace and its collections.
	DeleteWorkspace(ctx context.Context, id string) error
}
