package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Search  driving.SearchService
	Indexer driving.WorkspaceIndexer

	// Quiet disables the per-request access log.
	Quiet bool
}

// NewRouter creates the API router.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	if !deps.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	h := &handler{search: deps.Search, indexer: deps.Indexer}

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", h.searchDocuments)
		r.Get("/suggest", h.suggest)
		r.Get("/stats", h.stats)
		r.Route("/workspaces/{id}", func(r chi.Router) {
			r.Post("/reindex", h.reindex)
			r.Get("/status", h.status)
		})
	})

	return r
}
