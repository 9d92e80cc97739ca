// Package cli provides the taskdex command-line interface.
// It is a driving adapter: every command talks to the core through the
// driving ports set with SetServices.
package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
	"github.com/custodia-labs/taskdex/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	searchService   driving.SearchService
	indexerService  driving.WorkspaceIndexer
	settingsService driving.SettingsService
	workspaceStore  driven.WorkspaceStore
)

// The in-memory index starts empty in every process, so commands that
// read it load the store first, once.
var (
	indexOnce sync.Once
	indexErr  error
)

var (
	errSearchNotConfigured   = errors.New("search service not configured")
	errIndexerNotConfigured  = errors.New("indexer not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
)

var rootCmd = &cobra.Command{
	Use:   "taskdex",
	Short: "Search tasks, pages and members across workspaces",
	Long: `taskdex keeps an in-memory full-text index of workspace tasks, pages
and members and answers filtered, faceted, paginated queries against it.

Workspaces are loaded from the local store, which is filled by importing
workspace export files or by watching an export directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// Services aggregates the core services the commands use.
type Services struct {
	Search   driving.SearchService
	Indexer  driving.WorkspaceIndexer
	Settings driving.SettingsService
	Store    driven.WorkspaceStore
}

// SetServices injects the core services and forgets any earlier load of
// the index.
func SetServices(s Services) {
	searchService = s.Search
	indexerService = s.Indexer
	settingsService = s.Settings
	workspaceStore = s.Store
	indexOnce = sync.Once{}
	indexErr = nil
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ensureIndexed loads every stored workspace into the index the first time
// it is called. Without an indexer the index is used as it is.
func ensureIndexed(ctx context.Context) error {
	if indexerService == nil {
		return nil
	}
	indexOnce.Do(func() {
		if err := indexerService.ReindexAll(ctx); err != nil {
			indexErr = fmt.Errorf("loading workspaces: %w", err)
		}
	})
	return indexErr
}

// currentSettings returns the configured settings, or the defaults when
// no settings service is wired or it fails.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	s, err := settingsService.Get()
	if err != nil {
		logger.Warn("Failed to load settings, using defaults: %v", err)
		return domain.DefaultAppSettings()
	}
	return *s
}
