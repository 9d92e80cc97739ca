package normalisers

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/normalisers/html"
	"github.com/custodia-labs/taskdex/internal/normalisers/markdown"
	"github.com/custodia-labs/taskdex/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps body formats to normalisers. Bodies with an empty or
// unregistered format go to the plain text normaliser.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.ContentFormat]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make(map[domain.ContentFormat]driven.Normaliser),
	}
}

// NewDefaultRegistry creates a registry with the markdown, HTML and plain
// text normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	return r
}

// Register adds a normaliser for every format it supports, replacing any
// previous registration.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, format := range n.SupportedFormats() {
		r.normalisers[format] = n
	}
}

// Normalise converts body with the normaliser registered for format.
// Without any applicable normaliser the body is returned unchanged.
func (r *Registry) Normalise(ctx context.Context, format domain.ContentFormat, body string) (string, error) {
	r.mu.RLock()
	n, ok := r.normalisers[format]
	if !ok {
		n, ok = r.normalisers[domain.ContentFormatText]
	}
	r.mu.RUnlock()

	if !ok {
		return body, nil
	}
	return n.Normalise(ctx, body)
}

// SupportedFormats returns every registered format, sorted.
func (r *Registry) SupportedFormats() []domain.ContentFormat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]domain.ContentFormat, 0, len(r.normalisers))
	for f := range r.normalisers {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}
