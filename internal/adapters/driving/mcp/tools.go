package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

const (
	defaultToolLimit    = 10
	defaultSuggestLimit = 10
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"free text to search for; empty lists everything"`
	Workspaces []string `json:"workspaces,omitempty" jsonschema:"restrict to these workspace ids"`
	Types      []string `json:"types,omitempty" jsonschema:"restrict to result types: task, page, member"`
	Status     []string `json:"status,omitempty" jsonschema:"restrict tasks to these statuses"`
	Priority   []string `json:"priority,omitempty" jsonschema:"restrict tasks to these priorities"`
	Tags       []string `json:"tags,omitempty" jsonschema:"require any of these tags"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Offset     int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Sort       string   `json:"sort,omitempty" jsonschema:"relevance, date, title or type"`
	Order      string   `json:"order,omitempty" jsonschema:"asc or desc (default desc)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Total   int                  `json:"total"`
	HasMore bool                 `json:"has_more"`
	Facets  domain.Facets        `json:"facets"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Workspace   string   `json:"workspace"`
	Score       float64  `json:"score"`
	Highlights  []string `json:"highlights,omitempty"`
}

// SuggestInput is the input schema for the suggest tool.
type SuggestInput struct {
	Prefix string `json:"prefix" jsonschema:"partial query whose last word is completed"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default 10)"`
}

// SuggestOutput is the output schema for the suggest tool.
type SuggestOutput struct {
	Suggestions []string `json:"suggestions"`
}

// ReindexInput is the input schema for the reindex tool.
type ReindexInput struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"workspace to rebuild"`
}

// ReindexOutput is the output schema for the reindex tool.
type ReindexOutput struct {
	WorkspaceID string `json:"workspace_id"`
	Tasks       int    `json:"tasks"`
	Pages       int    `json:"pages"`
	Members     int    `json:"members"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search workspace tasks, pages and members",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest",
		Description: "Complete the last word of a query from indexed terms",
	}, s.handleSuggest)

	if s.ports.Indexer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "reindex",
			Description: "Rebuild the search index of one workspace",
		}, s.handleReindex)
	}
}

// handleSearch handles the search tool invocation. Highlights are always on.
func (s *Server) handleSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultToolLimit
	}

	opts, err := domain.SearchRequest{
		Query:      input.Query,
		Workspaces: input.Workspaces,
		Types:      input.Types,
		Statuses:   input.Status,
		Priorities: input.Priority,
		Tags:       input.Tags,
		Limit:      limit,
		Offset:     input.Offset,
		Sort:       input.Sort,
		Order:      input.Order,
		Highlight:  true,
	}.Options()
	if err != nil {
		return nil, SearchOutput{}, err
	}

	resp := s.ports.Search.Search(opts)

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(resp.Results)),
		Total:   resp.Total,
		HasMore: resp.HasMore,
		Facets:  resp.Facets,
	}
	for i := range resp.Results {
		r := &resp.Results[i]
		workspace := r.WorkspaceName
		if workspace == "" {
			workspace = r.WorkspaceID
		}
		output.Results[i] = SearchResultOutput{
			ID:          r.ID,
			Type:        r.Type.String(),
			Title:       r.Title,
			Description: r.Description,
			Workspace:   workspace,
			Score:       r.Score,
			Highlights:  r.Highlights,
		}
	}

	return nil, output, nil
}

// handleSuggest handles the suggest tool invocation.
func (s *Server) handleSuggest(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	return nil, SuggestOutput{Suggestions: s.ports.Search.GetSuggestions(input.Prefix, limit)}, nil
}

// handleReindex handles the reindex tool invocation.
func (s *Server) handleReindex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReindexInput,
) (*mcp.CallToolResult, ReindexOutput, error) {
	if input.WorkspaceID == "" {
		return nil, ReindexOutput{}, fmt.Errorf("%w: workspace_id is required", domain.ErrInvalidInput)
	}
	if err := s.ports.Indexer.Reindex(ctx, input.WorkspaceID); err != nil {
		return nil, ReindexOutput{}, err
	}
	status, err := s.ports.Indexer.Status(input.WorkspaceID)
	if err != nil {
		return nil, ReindexOutput{}, err
	}
	return nil, ReindexOutput{
		WorkspaceID: status.WorkspaceID,
		Tasks:       status.Tasks,
		Pages:       status.Pages,
		Members:     status.Members,
	}, nil
}
