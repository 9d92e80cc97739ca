package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "taskdex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Index statistics: document and token counts by type and workspace",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	if s.ports.Indexer != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "workspaces/{workspaceId}/status",
			Name:        "workspace-status",
			Description: "Last indexing run of a workspace",
			MIMEType:    "application/json",
		}, s.handleStatusResource)
	}
}

// handleStatsResource returns the index statistics.
func (s *Server) handleStatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Search.Stats())
}

// handleStatusResource returns the indexing status of one workspace.
func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	workspaceID := extractWorkspaceID(req.Params.URI)
	if workspaceID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status, err := s.ports.Indexer.Status(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	type statusInfo struct {
		WorkspaceID string     `json:"workspace_id"`
		Running     bool       `json:"running"`
		Tasks       int        `json:"tasks"`
		Pages       int        `json:"pages"`
		Members     int        `json:"members"`
		LastIndexed *time.Time `json:"last_indexed,omitempty"`
		LastError   string     `json:"last_error,omitempty"`
	}

	info := statusInfo{
		WorkspaceID: status.WorkspaceID,
		Running:     status.Running,
		Tasks:       status.Tasks,
		Pages:       status.Pages,
		Members:     status.Members,
	}
	if !status.LastIndexed.IsZero() {
		info.LastIndexed = &status.LastIndexed
	}
	if status.LastError != nil {
		info.LastError = status.LastError.Error()
	}
	return jsonResource(req.Params.URI, info)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractWorkspaceID extracts the workspace ID from a URI like taskdex://workspaces/{workspaceId}/status.
func extractWorkspaceID(uri string) string {
	const prefix = uriScheme + "workspaces/"
	const suffix = "/status"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
