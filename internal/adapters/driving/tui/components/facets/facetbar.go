// Package facets provides the facet summary bar for the TUI.
package facets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// maxPerGroup caps how many values one facet group shows.
const maxPerGroup = 4

// Bar summarises the facet counts of the full result set, one group per
// line: type, status, priority and workspace.
type Bar struct {
	styles *styles.Styles
	facets domain.Facets
	width  int
}

// NewBar creates an empty facet bar.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles: s,
		facets: domain.NewFacets(),
		width:  80,
	}
}

// SetFacets replaces the displayed counts.
func (b *Bar) SetFacets(f domain.Facets) {
	b.facets = f
}

// Facets returns the displayed counts.
func (b *Bar) Facets() domain.Facets {
	return b.facets
}

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// View renders the non-empty facet groups. It returns an empty string
// when every group is empty.
func (b *Bar) View() string {
	groups := []struct {
		label  string
		counts map[string]int
	}{
		{"type", b.facets.Type},
		{"status", b.facets.Status},
		{"priority", b.facets.Priority},
		{"workspace", b.facets.Workspace},
	}

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g.counts) == 0 {
			continue
		}
		parts = append(parts, b.styles.Muted.Render(g.label+": ")+b.styles.Facet.Render(FormatCounts(g.counts)))
	}
	if len(parts) == 0 {
		return ""
	}

	line := strings.Join(parts, b.styles.Muted.Render("  |  "))
	return lipgloss.NewStyle().MaxWidth(b.width).Render(line)
}

// FormatCounts renders "value count" pairs ordered by descending count, then by name.
func FormatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	more := 0
	if len(keys) > maxPerGroup {
		more = len(keys) - maxPerGroup
		keys = keys[:maxPerGroup]
	}

	items := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		items = append(items, fmt.Sprintf("%s %d", k, counts[k]))
	}
	if more > 0 {
		items = append(items, fmt.Sprintf("+%d", more))
	}
	return strings.Join(items, " · ")
}
