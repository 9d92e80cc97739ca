package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// highlighter wraps whole-word, case-insensitive occurrences of the query
// tokens in highlight markers.
type highlighter struct {
	pattern       *regexp.Regexp
	open, close   string
	snippetLength int
}

func (s *SearchService) newHighlighter(tokens []string) *highlighter {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return &highlighter{
		pattern:       regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
		open:          s.settings.HighlightOpen,
		close:         s.settings.HighlightClose,
		snippetLength: s.settings.SnippetLength,
	}
}

// highlight returns the title, description and content snippet with
// matches wrapped, skipping empty fields.
func (h *highlighter) highlight(doc *domain.SearchResult) []string {
	fields := []string{doc.Title, doc.Description, snippet(doc.Content, h.snippetLength)}

	highlights := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		highlights = append(highlights, h.wrap(field))
	}
	return highlights
}

func (h *highlighter) wrap(text string) string {
	return h.pattern.ReplaceAllStringFunc(text, func(match string) string {
		return h.open + match + h.close
	})
}

// snippet returns the first n runes of text.
func snippet(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
