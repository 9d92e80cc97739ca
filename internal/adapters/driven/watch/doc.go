// Package watch provides a filesystem implementation of driven.ChangeWatcher.
//
// The watcher observes an import directory of workspace export files
// (<workspace>.json). Each created or rewritten export is saved to the
// workspace store before a change is emitted, so a consumer that reindexes
// on the change reads the new data. Removing an export emits a deletion.
//
// Exports already present when watching starts are imported and reported
// as created. Hidden files and non-JSON files are ignored.
package watch
