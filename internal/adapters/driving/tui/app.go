package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	searchView  *search.View
	currentView messages.ViewType

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        h,
		searchView:  search.NewView(s, km, ports.Search, ports.Indexer, viewConfig(ports)),
		currentView: messages.ViewSearch,
	}, nil
}

// viewConfig reads page size and markers from settings, falling back to
// the defaults when settings are absent or unreadable.
func viewConfig(ports *Ports) search.Config {
	settings := domain.DefaultSearchSettings()
	if ports.Settings != nil {
		if app, err := ports.Settings.Get(); err == nil {
			settings = app.Search
		} else {
			logger.Warn("Failed to load settings for TUI: %v", err)
		}
	}
	return search.Config{
		Limit:          settings.DefaultLimit,
		HighlightOpen:  settings.HighlightOpen,
		HighlightClose: settings.HighlightClose,
	}
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("taskdex"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Help):
			if a.currentView == messages.ViewHelp {
				a.currentView = messages.ViewSearch
			} else {
				a.currentView = messages.ViewHelp
			}
			return a, nil
		}

		if a.currentView == messages.ViewHelp {
			if keymap.Matches(k, a.keymap.Back) {
				a.currentView = messages.ViewSearch
			}
			return a, nil
		}

		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	a.err = a.searchView.Err()
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewHelp {
		return a.viewHelp()
	}
	return a.searchView.View()
}

func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("taskdex help"),
		"",
		a.styles.Normal.Render("Type to search. Results update as you type."),
		"",
		a.help.FullHelpView(a.keymap.FullHelp()),
		"",
		a.styles.Help.Render("[f1/esc] back to search"),
	)
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current page of results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.searchView.SetDimensions(width, height)
}
