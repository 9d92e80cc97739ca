// Package http exposes the search index over a JSON HTTP API.
//
// Routes:
//
//	GET  /api/search                    query parameters mirror the CLI flags
//	GET  /api/suggest?q=&limit=         token completions
//	POST /api/workspaces/{id}/reindex   rebuild one workspace
//	GET  /api/workspaces/{id}/status    last indexing run of a workspace
//	GET  /api/stats                     index statistics
//	GET  /healthz                       liveness
//
// Errors are returned as {"error": "..."} with a status derived from the
// domain error: invalid input is 400, unknown workspaces are 404, a
// reindex already running is 409 and anything else is 500.
package http
