// Package search provides the search-as-you-type view for the TUI.
package search

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/components/facets"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
)

// DefaultDebounce is how long the input must be idle before a search runs.
const DefaultDebounce = 150 * time.Millisecond

// scopes is the cycle order of the type filter. Empty means all types.
var scopes = []domain.ResultType{"", domain.ResultTypeTask, domain.ResultTypePage, domain.ResultTypeMember}

// Config tunes the search view.
type Config struct {
	// Limit is the page size. Zero uses the service default.
	Limit int

	// Debounce is the idle interval before a search runs.
	Debounce time.Duration

	// HighlightOpen and HighlightClose are the markers the service emits.
	HighlightOpen  string
	HighlightClose string
}

// View is the search view: query input, facet bar, result list and
// status bar. Every edit is debounced and only the latest search is shown.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	facetbar  *facets.Bar
	statusbar *status.Bar

	searchService driving.SearchService
	indexer       driving.WorkspaceIndexer
	ctx           context.Context
	cfg           Config

	seq     int
	scope   int
	fuzzy   bool
	offset  int
	hasMore bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new search view. The indexer may be nil, which
// disables the reindex binding.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	indexer driving.WorkspaceIndexer,
	cfg Config,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Limit <= 0 {
		cfg.Limit = domain.DefaultSearchSettings().DefaultLimit
	}

	l := list.NewResultList(s)
	if cfg.HighlightOpen != "" && cfg.HighlightClose != "" {
		l.SetMarkers(cfg.HighlightOpen, cfg.HighlightClose)
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          l,
		facetbar:      facets.NewBar(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		indexer:       indexer,
		ctx:           context.Background(),
		cfg:           cfg,
		fuzzy:         true,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context used for reindexing.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the cursor blink and lists the most recent documents.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.searchNow())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		if msg.Seq != v.seq {
			return v, nil
		}
		return v, v.performSearch(msg.Seq)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ReindexCompleted:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusbar.SetMessage("")
		return v, v.searchNow()

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg routes navigation and filter keys. Everything else edits
// the query.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case keymap.Matches(k, v.keymap.NextPage):
		if !v.hasMore {
			return v, nil
		}
		v.offset += v.cfg.Limit
		return v, v.searchNow()

	case keymap.Matches(k, v.keymap.PrevPage):
		if v.offset == 0 {
			return v, nil
		}
		v.offset = max(v.offset-v.cfg.Limit, 0)
		return v, v.searchNow()

	case keymap.Matches(k, v.keymap.CycleType):
		v.scope = (v.scope + 1) % len(scopes)
		v.input.SetScope(string(scopes[v.scope]))
		v.offset = 0
		return v, v.searchNow()

	case keymap.Matches(k, v.keymap.ToggleFuzzy):
		v.fuzzy = !v.fuzzy
		v.statusbar.SetFuzzy(v.fuzzy)
		v.offset = 0
		return v, v.searchNow()

	case keymap.Matches(k, v.keymap.Reindex):
		return v, v.reindex()

	case keymap.Matches(k, v.keymap.Back):
		if v.input.Value() == "" {
			return v, nil
		}
		v.input.Reset()
		v.offset = 0
		return v, v.searchNow()
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}

	v.offset = 0
	v.seq++
	seq := v.seq
	debounce := tea.Tick(v.cfg.Debounce, func(time.Time) tea.Msg {
		return messages.DebounceElapsed{Seq: seq}
	})
	return v, tea.Batch(cmd, debounce)
}

// searchNow bumps the sequence and searches without debouncing.
func (v *View) searchNow() tea.Cmd {
	v.seq++
	return v.performSearch(v.seq)
}

// Options builds the search options for the current query and filters.
func (v *View) Options() domain.SearchOptions {
	opts := domain.SearchOptions{
		Query:          v.input.Value(),
		Limit:          v.cfg.Limit,
		Offset:         v.offset,
		IncludeContent: true,
		FuzzySearch:    domain.BoolPtr(v.fuzzy),
	}
	if t := scopes[v.scope]; t != "" {
		opts.Filters.Types = []domain.ResultType{t}
	}
	return opts
}

// performSearch captures the options now and runs the search off the
// update loop.
func (v *View) performSearch(seq int) tea.Cmd {
	opts := v.Options()
	svc := v.searchService
	v.statusbar.SetState(status.StateSearching)

	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		return messages.SearchCompleted{Seq: seq, Options: opts, Response: svc.Search(opts)}
	}
}

func (v *View) reindex() tea.Cmd {
	if v.indexer == nil {
		v.statusbar.SetMessage("Reindex not available")
		return nil
	}
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("Reindexing...")

	ctx, indexer := v.ctx, v.indexer
	return func() tea.Msg {
		return messages.ReindexCompleted{Err: indexer.ReindexAll(ctx)}
	}
}

// handleSearchCompleted applies the latest search and drops stale ones.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	resp := msg.Response
	v.hasMore = resp.HasMore
	v.list.SetResults(resp.Results)
	v.facetbar.SetFacets(resp.Facets)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetPage(msg.Options.Offset, len(resp.Results), resp.Total)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("taskdex"), "", v.input.View(), "")

	if fb := v.facetbar.View(); fb != "" {
		sections = append(sections, fb, "")
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.facetbar.SetWidth(width)
	v.list.SetDimensions(width, height-12)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Seq returns the sequence number of the latest edit.
func (v *View) Seq() int {
	return v.seq
}

// Results returns the current page of results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Facets returns the facet counts of the latest search.
func (v *View) Facets() domain.Facets {
	return v.facetbar.Facets()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the query, filters and results.
func (v *View) Reset() {
	v.input.Reset()
	v.input.SetScope("")
	v.scope = 0
	v.offset = 0
	v.hasMore = false
	v.list.SetResults(nil)
	v.facetbar.SetFacets(domain.NewFacets())
	v.err = nil
	v.statusbar.Clear()
}
