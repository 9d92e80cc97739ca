// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - WorkspaceStore: Source of workspace tasks, pages and members
//   - ConfigStore: Application configuration
//   - NormaliserRegistry: Converts page bodies to plain text
//
// # Optional Interfaces
//
//   - ChangeWatcher: Pushes workspace change events. Without it the index
//     is only rebuilt on explicit reindex.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
