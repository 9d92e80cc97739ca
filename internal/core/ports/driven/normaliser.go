package driven

import (
	"context"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// Normaliser converts an encoded page body into plain searchable text.
type Normaliser interface {
	// SupportedFormats returns the body formats this normaliser handles.
	SupportedFormats() []domain.ContentFormat

	// Normalise converts body to plain text.
	Normalise(ctx context.Context, body string) (string, error)
}

// NormaliserRegistry selects the normaliser for a body format.
type NormaliserRegistry interface {
	// Normalise converts body using the normaliser registered for format.
	// Unknown or empty formats fall back to plain text.
	Normalise(ctx context.Context, format domain.ContentFormat, body string) (string, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedFormats returns every registered format.
	SupportedFormats() []domain.ContentFormat
}
