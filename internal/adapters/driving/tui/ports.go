// Package tui provides an interactive terminal user interface for taskdex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Indexer reloads workspaces on request. Optional.
	Indexer driving.WorkspaceIndexer

	// Settings supplies page size and highlight markers. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, indexer driving.WorkspaceIndexer, settings driving.SettingsService) *Ports {
	return &Ports{
		Search:   search,
		Indexer:  indexer,
		Settings: settings,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
