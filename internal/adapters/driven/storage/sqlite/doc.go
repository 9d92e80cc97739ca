// Package sqlite provides a SQLite-backed implementation of driven.WorkspaceStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Imported snapshots are persisted here so
// the index can be rebuilt on startup without re-reading the original files.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Nested task data (tags, subtasks, comments, attachments) is stored as JSON columns.
//
// # Data Location
//
// By default, the database is stored at ~/.taskdex/data/taskdex.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
