// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// QueryChanged is sent when the query input or a filter changes. Seq
// orders edits so that only the latest one triggers a search.
type QueryChanged struct {
	Query string
	Seq   int
}

// DebounceElapsed fires once the input has been idle for the debounce
// interval after the edit numbered Seq.
type DebounceElapsed struct {
	Seq int
}

// SearchCompleted carries one page of results back to the model.
type SearchCompleted struct {
	Seq      int
	Options  domain.SearchOptions
	Response domain.SearchResponse
	Err      error
}

// ReindexCompleted is sent when a user-requested reindex finishes.
type ReindexCompleted struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
