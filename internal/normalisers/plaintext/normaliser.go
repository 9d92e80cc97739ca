package plaintext

import (
	"context"
	"strings"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text bodies.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the body formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.ContentFormat {
	return []domain.ContentFormat{domain.ContentFormatText}
}

// Normalise collapses runs of spaces and tabs, trims every line and drops
// blank lines. Line structure is otherwise kept.
func (n *Normaliser) Normalise(_ context.Context, body string) (string, error) {
	return CollapseWhitespace(body), nil
}

// CollapseWhitespace trims each line of text, collapses inner whitespace
// to single spaces and removes empty lines.
func CollapseWhitespace(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
