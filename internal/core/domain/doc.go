// Package domain defines the core business entities for taskdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchResult: An indexed document (task, page or member) with metadata
//   - Metadata: Typed per-document-type attributes consulted by filters and facets
//   - Task, Page, Member: Workspace records as fetched from the backend
//   - SearchOptions / SearchResponse: The query contract
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
