package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore is an in-memory implementation of driven.WorkspaceStore.
type WorkspaceStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.WorkspaceSnapshot
}

// NewWorkspaceStore creates a new in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		snapshots: make(map[string]domain.WorkspaceSnapshot),
	}
}

// ListWorkspaces returns every workspace ordered by ID.
func (s *WorkspaceStore) ListWorkspaces(_ context.Context) ([]domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workspaces := make([]domain.Workspace, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		workspaces = append(workspaces, snap.Workspace)
	}
	slices.SortFunc(workspaces, func(a, b domain.Workspace) int {
		return strings.Compare(a.ID, b.ID)
	})
	return workspaces, nil
}

// GetWorkspace retrieves a workspace by ID.
func (s *WorkspaceStore) GetWorkspace(_ context.Context, id string) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	ws := snap.Workspace
	return &ws, nil
}

// ListTasks returns a copy of the tasks of a workspace.
func (s *WorkspaceStore) ListTasks(_ context.Context, workspaceID string) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[workspaceID]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return slices.Clone(snap.Tasks), nil
}

// ListPages returns a copy of the pages of a workspace.
func (s *WorkspaceStore) ListPages(_ context.Context, workspaceID string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[workspaceID]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return slices.Clone(snap.Pages), nil
}

// ListMembers returns a copy of the members of a workspace.
func (s *WorkspaceStore) ListMembers(_ context.Context, workspaceID string) ([]domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[workspaceID]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return slices.Clone(snap.Members), nil
}

// SaveSnapshot replaces a workspace and its collections.
func (s *WorkspaceStore) SaveSnapshot(_ context.Context, snapshot *domain.WorkspaceSnapshot) error {
	if snapshot == nil || snapshot.Workspace.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOwnership(snapshot); err != nil {
		return err
	}
	s.snapshots[snapshot.Workspace.ID] = domain.WorkspaceSnapshot{
		Workspace: snapshot.Workspace,
		Tasks:     slices.Clone(snapshot.Tasks),
		Pages:     slices.Clone(snapshot.Pages),
		Members:   slices.Clone(snapshot.Members),
	}
	return nil
}

// checkOwnership rejects records whose index id is already held by another
// workspace. Caller must hold the write lock.
func (s *WorkspaceStore) checkOwnership(snapshot *domain.WorkspaceSnapshot) error {
	incoming := make(map[string]struct{})
	for _, id := range snapshot.DocumentIDs() {
		incoming[id] = struct{}{}
	}
	for wsID, other := range s.snapshots {
		if wsID == snapshot.Workspace.ID {
			continue
		}
		for _, id := range other.DocumentIDs() {
			if _, clash := incoming[id]; clash {
				return fmt.Errorf("%w: %s already belongs to workspace %s", domain.ErrInvalidInput, id, wsID)
			}
		}
	}
	return nil
}

// DeleteWorkspace removes a workspace and its collections.
func (s *WorkspaceStore) DeleteWorkspace(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snapshots[id]; !ok {
		return domain.ErrWorkspaceNotFound
	}
	delete(s.snapshots, id)
	return nil
}
