package mcp

import (
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Indexer rebuilds workspaces. Optional: without it the reindex tool
	// and status resources are not registered.
	Indexer driving.WorkspaceIndexer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
