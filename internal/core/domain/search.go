package domain

import (
	"fmt"
	"strings"
	"time"
)

// SearchResult is the unit stored in the index and returned by queries.
// Score and Highlights are computed per query and never stored.
type SearchResult struct {
	// ID is namespaced by source type, e.g. "task-42".
	ID string `json:"id"`

	// Type is the kind of record this result was built from.
	Type ResultType `json:"type"`

	// Title is the primary display and match field.
	Title string `json:"title"`

	// Description is optional secondary text.
	Description string `json:"description,omitempty"`

	// Content aggregates nested text (subtasks, comments, page body).
	Content string `json:"content,omitempty"`

	// WorkspaceID is the owning workspace.
	WorkspaceID string `json:"workspaceId"`

	// WorkspaceName is a denormalised display label.
	WorkspaceName string `json:"workspaceName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Metadata holds the type-specific fields.
	Metadata Metadata `json:"metadata,omitempty"`

	// Highlights contains fields with matched terms wrapped in markers.
	Highlights []string `json:"highlights,omitempty"`

	// Score is the query-time relevance score.
	Score float64 `json:"score"`
}

// SortBy selects the ordering key of a search.
type SortBy string

// Available sort keys.
const (
	SortByRelevance SortBy = "relevance"
	SortByDate      SortBy = "date"
	SortByTitle     SortBy = "title"
	SortByType      SortBy = "type"
)

// IsValid returns true if the sort key is recognised.
func (s SortBy) IsValid() bool {
	switch s {
	case SortByRelevance, SortByDate, SortByTitle, SortByType:
		return true
	default:
		return false
	}
}

// ParseSortBy converts a string to a SortBy. Empty selects relevance.
func ParseSortBy(s string) (SortBy, error) {
	if s == "" {
		return SortByRelevance, nil
	}
	sb := SortBy(strings.ToLower(s))
	if !sb.IsValid() {
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, s)
	}
	return sb, nil
}

// SortOrder selects ascending or descending order.
type SortOrder string

// Available sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder converts a string to a SortOrder. Empty selects descending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "":
		return SortDesc, nil
	case string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidInput, s)
	}
}

// DateRange bounds CreatedAt inclusively. A zero bound is open.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// SearchFilters is a bag of hard AND predicates. Empty fields do not filter.
type SearchFilters struct {
	WorkspaceIDs   []string     `json:"workspaceIds,omitempty"`
	Types          []ResultType `json:"types,omitempty"`
	DateRange      *DateRange   `json:"dateRange,omitempty"`
	AssignedTo     []string     `json:"assignedTo,omitempty"`
	CreatedBy      []string     `json:"createdBy,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Status         []string     `json:"status,omitempty"`
	Priority       []string     `json:"priority,omitempty"`
	HasAttachments *bool        `json:"hasAttachments,omitempty"`
	HasComments    *bool        `json:"hasComments,omitempty"`
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Query is free text; empty matches every document.
	Query string

	// Filters restrict the candidate set.
	Filters SearchFilters

	// Limit is the page size. Zero or less selects the configured default.
	Limit int

	// Offset is the number of sorted results to skip.
	Offset int

	// SortBy selects the ordering key. Empty selects relevance.
	SortBy SortBy

	// SortOrder flips the ordering. Empty selects descending.
	SortOrder SortOrder

	// IncludeContent enables highlight computation.
	IncludeContent bool

	// FuzzySearch enables approximate token matching. Nil means enabled.
	FuzzySearch *bool
}

// Fuzzy reports whether approximate token matching is enabled.
func (o SearchOptions) Fuzzy() bool {
	return o.FuzzySearch == nil || *o.FuzzySearch
}

// Facets counts values over the whole filtered result set.
type Facets struct {
	Type      map[string]int `json:"type"`
	Status    map[string]int `json:"status"`
	Priority  map[string]int `json:"priority"`
	Workspace map[string]int `json:"workspace"`
}

// NewFacets returns facets with every dimension initialised.
func NewFacets() Facets {
	return Facets{
		Type:      make(map[string]int),
		Status:    make(map[string]int),
		Priority:  make(map[string]int),
		Workspace: make(map[string]int),
	}
}

// SearchResponse is one page of a search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	HasMore bool           `json:"hasMore"`
	Facets  Facets         `json:"facets"`
}

// IndexStats summarises the index contents.
type IndexStats struct {
	Documents   int                `json:"documents"`
	Tokens      int                `json:"tokens"`
	ByType      map[ResultType]int `json:"byType"`
	ByWorkspace map[string]int     `json:"byWorkspace"`
}

// BoolPtr returns a pointer to b, for optional filter fields.
func BoolPtr(b bool) *bool {
	return &b
}
