// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// linesPerResult is the height of one rendered result.
const linesPerResult = 3

// ResultList displays one page of search results in a navigable list.
type ResultList struct {
	results   []domain.SearchResult
	selected  int
	styles    *styles.Styles
	openMark  string
	closeMark string
	width     int
	height    int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	defaults := domain.DefaultSearchSettings()
	return &ResultList{
		styles:    s,
		openMark:  defaults.HighlightOpen,
		closeMark: defaults.HighlightClose,
		width:     80,
		height:    10,
	}
}

// SetMarkers sets the highlight markers the search service emits.
func (r *ResultList) SetMarkers(open, closing string) {
	r.openMark = open
	r.closeMark = closing
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles arrow key navigation.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := r.height / linesPerResult
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.results) {
		end = len(r.results)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}
	return strings.Join(lines, "\n")
}

// renderResult formats a result as a title line, a workspace line and a
// preview line. Highlighted terms are drawn in the match style.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := result.Title
	if len(result.Highlights) > 0 && result.Title != "" {
		title = result.Highlights[0]
	}
	if title == "" {
		title = "(Untitled)"
	}
	title = r.styles.Highlight(title, r.openMark, r.closeMark)

	badge := r.styles.TypeBadge(result.Type).Render(string(result.Type))
	score := r.styles.Muted.Render(fmt.Sprintf("%.2f", result.Score))
	titleWidth := r.width - lipgloss.Width(indicator) - lipgloss.Width(badge) - lipgloss.Width(score) - 3
	if titleWidth < 10 {
		titleWidth = 10
	}
	title = lipgloss.NewStyle().MaxWidth(titleWidth).Render(title)

	head := indicator + badge + " " + title + "  " + score
	if index == r.selected {
		head = r.styles.Selected.Render(indicator) + badge + " " + r.styles.Normal.Bold(true).Render(title) + "  " + score
	}

	workspace := result.WorkspaceName
	if workspace == "" {
		workspace = result.WorkspaceID
	}
	workspaceLine := r.styles.Subtitle.Render("    " + workspace)

	preview := r.styles.Highlight(r.preview(result), r.openMark, r.closeMark)
	previewLine := lipgloss.NewStyle().MaxWidth(r.width).Render(r.styles.Muted.Render("    ") + preview)

	return head + "\n" + workspaceLine + "\n" + previewLine
}

// preview picks the first highlight after the title, falling back to the
// plain description.
func (r *ResultList) preview(result *domain.SearchResult) string {
	rest := result.Highlights
	if len(rest) > 0 && result.Title != "" {
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return strings.Join(strings.Fields(rest[0]), " ")
	}
	return strings.Join(strings.Fields(result.Description), " ")
}

// SetResults replaces the listed results and resets the selection.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out of range indexes are ignored.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
