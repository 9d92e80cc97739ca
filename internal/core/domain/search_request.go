package domain

import (
	"fmt"
	"strings"
)

// SearchRequest is a search as given on a command line, in a URL query or
// in a tool call: plain strings that still need parsing.
type SearchRequest struct {
	Query string

	Workspaces []string
	Types      []string
	Statuses   []string
	Priorities []string
	Assignees  []string
	Creators   []string
	Tags       []string

	// Since and Until bound CreatedAt. A date without a time makes Until
	// cover the whole day.
	Since string
	Until string

	HasAttachments *bool
	HasComments    *bool

	Limit  int
	Offset int
	Sort   string
	Order  string

	NoFuzzy   bool
	Highlight bool
}

// Options parses the request into SearchOptions.
// Malformed values are reported as ErrInvalidInput.
func (r SearchRequest) Options() (SearchOptions, error) {
	if r.Limit < 0 {
		return SearchOptions{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if r.Offset < 0 {
		return SearchOptions{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}

	sortBy, err := ParseSortBy(r.Sort)
	if err != nil {
		return SearchOptions{}, err
	}
	order, err := ParseSortOrder(r.Order)
	if err != nil {
		return SearchOptions{}, err
	}

	filters := SearchFilters{
		WorkspaceIDs:   splitValues(r.Workspaces),
		AssignedTo:     splitValues(r.Assignees),
		CreatedBy:      splitValues(r.Creators),
		Tags:           splitValues(r.Tags),
		Status:         splitValues(r.Statuses),
		Priority:       splitValues(r.Priorities),
		HasAttachments: r.HasAttachments,
		HasComments:    r.HasComments,
	}

	for _, s := range splitValues(r.Types) {
		t, err := ParseResultType(strings.ToLower(s))
		if err != nil {
			return SearchOptions{}, err
		}
		filters.Types = append(filters.Types, t)
	}

	if r.Since != "" || r.Until != "" {
		var dr DateRange
		if r.Since != "" {
			if dr.Start, err = ParseDate(r.Since); err != nil {
				return SearchOptions{}, err
			}
		}
		if r.Until != "" {
			if dr.End, err = ParseDate(r.Until); err != nil {
				return SearchOptions{}, err
			}
			if isDateOnly(r.Until) {
				dr.End = EndOfDay(dr.End)
			}
		}
		if !dr.Start.IsZero() && !dr.End.IsZero() && dr.End.Before(dr.Start) {
			return SearchOptions{}, fmt.Errorf("%w: until is before since", ErrInvalidInput)
		}
		filters.DateRange = &dr
	}

	opts := SearchOptions{
		Query:          r.Query,
		Filters:        filters,
		Limit:          r.Limit,
		Offset:         r.Offset,
		SortBy:         sortBy,
		SortOrder:      order,
		IncludeContent: r.Highlight,
	}
	if r.NoFuzzy {
		opts.FuzzySearch = BoolPtr(false)
	}
	return opts, nil
}

// splitValues flattens repeated and comma-separated values, dropping blanks.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func isDateOnly(s string) bool {
	return len(s) == len("2006-01-02")
}
