package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an unknown page body format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSearchUnavailable indicates the search index is not configured.
	ErrSearchUnavailable = errors.New("search index unavailable")

	// ErrWorkspaceNotFound indicates the workspace is unknown to the store.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrIndexInProgress indicates a reindex of the same workspace is already running.
	ErrIndexInProgress = errors.New("index in progress")

	// ErrWatcherClosed indicates the change watcher has been closed.
	ErrWatcherClosed = errors.New("watcher closed")
)
