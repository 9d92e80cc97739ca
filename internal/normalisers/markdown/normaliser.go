package markdown

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown bodies.
type Normaliser struct {
	parser goldmark.Markdown
}

// New creates a new Markdown normaliser with table and strikethrough support.
func New() *Normaliser {
	return &Normaliser{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
		),
	}
}

// SupportedFormats returns the body formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.ContentFormat {
	return []domain.ContentFormat{domain.ContentFormatMarkdown}
}

// Normalise parses body and keeps its readable text. Formatting markers,
// images, code and raw HTML are dropped; links keep their label. Each
// block ends up on its own line.
func (n *Normaliser) Normalise(_ context.Context, body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	source := []byte(body)
	doc := n.parser.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if node.Type() == ast.TypeBlock {
				sb.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch node := node.(type) {
		case *ast.Image, *ast.CodeSpan, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(node.Value)
		case *ast.AutoLink:
			sb.Write(node.Label(source))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	return plaintext.CollapseWhitespace(sb.String()), nil
}
