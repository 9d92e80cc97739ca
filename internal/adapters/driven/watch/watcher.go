package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/snapshot"
	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// changeBuffer is the capacity of the emitted change channel.
const changeBuffer = 16

// Watcher imports workspace exports from a directory and reports changes.
type Watcher struct {
	dir   string
	store driven.WorkspaceStore

	mu     sync.Mutex
	fsw    *fsnotify.Watcher
	closed bool
	owners map[string]string // export path -> workspace id
}

// New creates a watcher over dir that imports exports into store.
func New(dir string, store driven.WorkspaceStore) *Watcher {
	return &Watcher{
		dir:    dir,
		store:  store,
		owners: make(map[string]string),
	}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Watch starts watching the directory. The returned channel is closed when
// the context is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.WorkspaceChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, domain.ErrWatcherClosed
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("watch path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path error: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.fsw = fsw

	changes := make(chan domain.WorkspaceChange, changeBuffer)
	go w.run(ctx, fsw, changes)

	logger.Debug("Watching %s for workspace exports", w.dir)
	return changes, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsw != nil {
		err := w.fsw.Close()
		w.fsw = nil
		return err
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- domain.WorkspaceChange) {
	defer close(changes)
	defer w.release(fsw)

	for _, change := range w.importExisting(ctx) {
		if !send(ctx, changes, change) {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if change := w.handleFsEvent(ctx, event); change != nil {
				if !send(ctx, changes, *change) {
					return
				}
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error on %s: %v", w.dir, err)
		}
	}
}

// release closes fsw unless Close already did.
func (w *Watcher) release(fsw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw == fsw {
		fsw.Close()
		w.fsw = nil
	}
}

// importExisting imports every export already in the directory.
func (w *Watcher) importExisting(ctx context.Context) []domain.WorkspaceChange {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("Failed to list %s: %v", w.dir, err)
		return nil
	}

	var changes []domain.WorkspaceChange
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if !snapshot.IsExportFile(path) {
			continue
		}
		id, ok := w.importFile(ctx, path)
		if ok {
			changes = append(changes, domain.WorkspaceChange{WorkspaceID: id, Type: domain.ChangeCreated})
		}
	}
	return changes
}

// handleFsEvent turns a filesystem event into a workspace change.
// It returns nil for events that do not affect a workspace.
func (w *Watcher) handleFsEvent(ctx context.Context, event fsnotify.Event) *domain.WorkspaceChange {
	if !snapshot.IsExportFile(event.Name) {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.WorkspaceChange{WorkspaceID: w.forget(event.Name), Type: domain.ChangeDeleted}

	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		id, ok := w.importFile(ctx, event.Name)
		if !ok {
			return nil
		}
		changeType := domain.ChangeUpdated
		if event.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.WorkspaceChange{WorkspaceID: id, Type: changeType}
	}
	return nil
}

// importFile reads an export and saves it to the store.
func (w *Watcher) importFile(ctx context.Context, path string) (string, bool) {
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		// Partially written files are retried on the next write event.
		logger.Warn("Skipping %s: %v", path, err)
		return "", false
	}
	if err := w.store.SaveSnapshot(ctx, snap); err != nil {
		logger.Warn("Failed to save workspace %s: %v", snap.Workspace.ID, err)
		return "", false
	}

	w.mu.Lock()
	w.owners[path] = snap.Workspace.ID
	w.mu.Unlock()

	logger.Debug("Imported workspace %s from %s", snap.Workspace.ID, path)
	return snap.Workspace.ID, true
}

// forget returns the workspace last imported from path, falling back to
// the id derived from the file name.
func (w *Watcher) forget(path string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	id, ok := w.owners[path]
	if !ok {
		return snapshot.WorkspaceIDFromPath(path)
	}
	delete(w.owners, path)
	return id
}

func send(ctx context.Context, changes chan<- domain.WorkspaceChange, change domain.WorkspaceChange) bool {
	select {
	case changes <- change:
		return true
	case <-ctx.Done():
		return false
	}
}
