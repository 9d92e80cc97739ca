package html

import (
	"context"
	"html"
	"regexp"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML bodies.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFormats returns the body formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.ContentFormat {
	return []domain.ContentFormat{domain.ContentFormatHTML}
}

// Normalise converts an HTML body to plain text, one block per line.
func (n *Normaliser) Normalise(_ context.Context, body string) (string, error) {
	return stripHTML(body), nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	closeBlockElement = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|td|th|blockquote|pre|table|section|article)>`)
	openBlockElement  = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	lineBreaks        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
)

// stripHTML removes non-content elements, turns block boundaries into
// newlines, strips remaining tags and decodes entities.
func stripHTML(content string) string {
	for _, re := range []*regexp.Regexp{scriptTag, styleTag, noscriptTag, headTag, svgTag, htmlComments} {
		content = re.ReplaceAllString(content, "")
	}

	content = openBlockElement.ReplaceAllString(content, "\n")
	content = closeBlockElement.ReplaceAllString(content, "\n")
	content = lineBreaks.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	return plaintext.CollapseWhitespace(content)
}
