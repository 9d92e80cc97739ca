// Package mcp provides an MCP (Model Context Protocol) server adapter for taskdex.
// It lets AI assistants search workspace tasks, pages and members.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
