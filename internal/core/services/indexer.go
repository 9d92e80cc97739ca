package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
	"github.com/custodia-labs/taskdex/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.WorkspaceIndexer = (*IndexerService)(nil)

// IndexerService feeds workspace collections from the store into the
// search index.
type IndexerService struct {
	store    driven.WorkspaceStore
	index    driving.SearchService
	registry driven.NormaliserRegistry
	perSec   float64

	// Status tracking
	mu       sync.RWMutex
	statuses map[string]*driving.IndexStatus
}

// NewIndexerService creates a new indexer. The registry is optional; without
// it page bodies are indexed as stored. maxReindexPerSecond throttles Watch
// and falls back to the default when not positive.
func NewIndexerService(
	store driven.WorkspaceStore,
	index driving.SearchService,
	registry driven.NormaliserRegistry,
	maxReindexPerSecond float64,
) *IndexerService {
	if maxReindexPerSecond <= 0 {
		maxReindexPerSecond = domain.DefaultAppSettings().Watch.MaxReindexPerSecond
	}
	return &IndexerService{
		store:    store,
		index:    index,
		registry: registry,
		perSec:   maxReindexPerSecond,
		statuses: make(map[string]*driving.IndexStatus),
	}
}

// Reindex replaces the index slice of one workspace with the store's
// current collections. A reindex of a workspace that is already being
// indexed returns domain.ErrIndexInProgress.
func (s *IndexerService) Reindex(ctx context.Context, workspaceID string) error {
	if !s.begin(workspaceID) {
		return fmt.Errorf("reindex %s: %w", workspaceID, domain.ErrIndexInProgress)
	}

	status := &driving.IndexStatus{WorkspaceID: workspaceID}
	err := s.reindex(ctx, workspaceID, status)
	s.finish(status, err)
	return err
}

func (s *IndexerService) reindex(ctx context.Context, workspaceID string, status *driving.IndexStatus) error {
	logger.Section("Reindex " + workspaceID)
	defer logger.Elapsed("reindex " + workspaceID)()

	// 1. Fetch the workspace and its collections
	ws, err := s.store.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("get workspace: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	pages, err := s.store.ListPages(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}
	members, err := s.store.ListMembers(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}

	// 2. Normalise page bodies to plain text
	if err := s.normalisePages(ctx, pages); err != nil {
		return err
	}

	// 3. Replace the workspace's documents
	s.index.ClearWorkspace(workspaceID)
	s.index.IndexTasks(*ws, tasks)
	s.index.IndexPages(*ws, pages)
	s.index.IndexMembers(*ws, members)

	status.Tasks = len(tasks)
	status.Pages = len(pages)
	status.Members = len(members)

	logger.Info("Indexed workspace %s: %d tasks, %d pages, %d members",
		workspaceID, status.Tasks, status.Pages, status.Members)
	return nil
}

// normalisePages converts page bodies in place. A body that fails to
// normalise is indexed as stored.
func (s *IndexerService) normalisePages(ctx context.Context, pages []domain.Page) error {
	if s.registry == nil {
		return nil
	}
	for i := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := s.registry.Normalise(ctx, pages[i].BodyFormat, pages[i].Body)
		if err != nil {
			logger.Warn("Failed to normalise page %s: %v", pages[i].ID, err)
			continue
		}
		pages[i].Body = text
	}
	return nil
}

// ReindexAll reindexes every workspace in the store.
func (s *IndexerService) ReindexAll(ctx context.Context) error {
	workspaces, err := s.store.ListWorkspaces(ctx)
	if err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}

	var errs []error
	for _, ws := range workspaces {
		if err := s.Reindex(ctx, ws.ID); err != nil {
			errs = append(errs, fmt.Errorf("reindex %s: %w", ws.ID, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Import validates a snapshot, saves it to the store and reindexes it.
func (s *IndexerService) Import(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot is required", domain.ErrInvalidInput)
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return s.Reindex(ctx, snapshot.Workspace.ID)
}

// Watch reindexes workspaces as changes arrive, at most maxReindexPerSecond
// times per second. It returns nil when the context is cancelled or the
// watcher closes its channel.
func (s *IndexerService) Watch(ctx context.Context, watcher driven.ChangeWatcher) error {
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(s.perSec), 1)
	logger.Info("Watching for workspace changes (max %.1f reindex/s)", s.perSec)

	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Workspace %s %s", change.WorkspaceID, change.Type)

			if change.Type == domain.ChangeDeleted {
				s.removeWorkspace(ctx, change.WorkspaceID)
				continue
			}

			if err := limiter.Wait(ctx); err != nil {
				return nil //nolint:nilerr // cancelled while throttled
			}
			if err := s.Reindex(ctx, change.WorkspaceID); err != nil {
				if errors.Is(err, domain.ErrIndexInProgress) {
					logger.Debug("Skipping %s: %v", change.WorkspaceID, err)
					continue
				}
				logger.Warn("Failed to reindex %s: %v", change.WorkspaceID, err)
			}
		}
	}
}

// removeWorkspace drops a deleted workspace from the index and the store.
func (s *IndexerService) removeWorkspace(ctx context.Context, workspaceID string) {
	s.index.ClearWorkspace(workspaceID)
	if err := s.store.DeleteWorkspace(ctx, workspaceID); err != nil && !errors.Is(err, domain.ErrWorkspaceNotFound) {
		logger.Warn("Failed to delete workspace %s: %v", workspaceID, err)
	}

	s.mu.Lock()
	delete(s.statuses, workspaceID)
	s.mu.Unlock()
}

// Status returns the state of the last indexing run of a workspace.
// A workspace that was never indexed reports an idle, empty status.
func (s *IndexerService) Status(workspaceID string) (*driving.IndexStatus, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("%w: workspace id is required", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.statuses[workspaceID]; ok {
		// Return a copy to avoid race conditions
		cp := *status
		return &cp, nil
	}
	return &driving.IndexStatus{WorkspaceID: workspaceID}, nil
}

// begin marks a workspace as being indexed. It returns false if a run is
// already in progress.
func (s *IndexerService) begin(workspaceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.statuses[workspaceID]; ok && status.Running {
		return false
	}
	prev := s.statuses[workspaceID]
	next := &driving.IndexStatus{WorkspaceID: workspaceID, Running: true}
	if prev != nil {
		next.LastIndexed = prev.LastIndexed
	}
	s.statuses[workspaceID] = next
	return true
}

// finish records the outcome of a run.
func (s *IndexerService) finish(status *driving.IndexStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status.Running = false
	status.LastError = err
	if err == nil {
		status.LastIndexed = time.Now()
	} else if prev, ok := s.statuses[status.WorkspaceID]; ok {
		status.LastIndexed = prev.LastIndexed
	}
	s.statuses[status.WorkspaceID] = status
}
