package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/components/facets"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// renderer writes human-readable output. On a terminal highlighted terms
// are styled; elsewhere the raw markers are kept so output stays greppable.
type renderer struct {
	out       io.Writer
	styles    *styles.Styles
	openMark  string
	closeMark string
}

func newRenderer(out io.Writer) *renderer {
	search := currentSettings().Search
	r := &renderer{
		out:       out,
		openMark:  search.HighlightOpen,
		closeMark: search.HighlightClose,
	}
	if isTerminal(out) {
		r.styles = styles.DefaultStyles()
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *renderer) highlight(text string) string {
	if r.styles == nil {
		return text
	}
	return r.styles.Highlight(text, r.openMark, r.closeMark)
}

func (r *renderer) title(text string) string {
	if r.styles == nil {
		return text
	}
	return r.styles.Title.Render(text)
}

func (r *renderer) muted(text string) string {
	if r.styles == nil {
		return text
	}
	return r.styles.Muted.Render(text)
}

func (r *renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// results prints one page of results as a numbered list.
func (r *renderer) results(resp domain.SearchResponse, offset int) {
	if len(resp.Results) == 0 {
		if resp.Total > 0 {
			r.printf("No results on this page (%d total).\n", resp.Total)
			return
		}
		r.printf("No results found.\n")
		return
	}

	r.printf("%s\n\n", r.title(fmt.Sprintf("Results %d-%d of %d",
		offset+1, offset+len(resp.Results), resp.Total)))

	for i := range resp.Results {
		res := &resp.Results[i]
		title := res.Title
		if title == "" {
			title = res.ID
		}
		if len(res.Highlights) > 0 && res.Title != "" {
			title = res.Highlights[0]
		}

		r.printf("  [%d] %s %s\n", offset+i+1, r.highlight(title),
			r.muted(fmt.Sprintf("(%s, %.2f)", res.Type, res.Score)))
		if line := detailLine(res); line != "" {
			r.printf("      %s\n", r.muted(line))
		}
		if snippet := snippetOf(res); snippet != "" {
			r.printf("      %s\n", r.highlight(snippet))
		}
		r.printf("\n")
	}

	if resp.HasMore {
		r.printf("%s\n", r.muted(fmt.Sprintf("More results available: --offset %d", offset+len(resp.Results))))
	}
}

// facetSummary prints the non-empty facet groups.
func (r *renderer) facetSummary(f domain.Facets) {
	groups := []struct {
		name   string
		counts map[string]int
	}{
		{"Type", f.Type},
		{"Status", f.Status},
		{"Priority", f.Priority},
		{"Workspace", f.Workspace},
	}
	for _, g := range groups {
		if len(g.counts) == 0 {
			continue
		}
		r.printf("%s: %s\n", g.name, facets.FormatCounts(g.counts))
	}
}

// detailLine joins the workspace and the status/priority attributes.
func detailLine(res *domain.SearchResult) string {
	parts := make([]string, 0, 3)
	if res.WorkspaceName != "" {
		parts = append(parts, res.WorkspaceName)
	} else if res.WorkspaceID != "" {
		parts = append(parts, res.WorkspaceID)
	}
	attrs := domain.AttributesOf(res.Metadata)
	if attrs.Status != "" {
		parts = append(parts, attrs.Status)
	}
	if attrs.Priority != "" {
		parts = append(parts, attrs.Priority)
	}
	return strings.Join(parts, " · ")
}

// snippetOf returns the first highlight after the title, or the plain
// description.
func snippetOf(res *domain.SearchResult) string {
	rest := res.Highlights
	if len(rest) > 0 && res.Title != "" {
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return strings.Join(strings.Fields(rest[0]), " ")
	}
	return strings.Join(strings.Fields(res.Description), " ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}
