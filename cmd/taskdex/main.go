// Command taskdex searches workspace tasks, pages and members.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/config/env"
	"github.com/custodia-labs/taskdex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/taskdex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/taskdex/internal/adapters/driving/cli"
	"github.com/custodia-labs/taskdex/internal/core/services"
	"github.com/custodia-labs/taskdex/internal/normalisers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Settings: config file overridden by TASKDEX_* variables
	fileStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(env.New(fileStore))
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// 2. Workspace store
	db, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()
	store := db.WorkspaceStore()

	// 3. Index and indexer
	search := services.NewSearchService(settings.Search)
	indexer := services.NewIndexerService(store, search, normalisers.NewDefaultRegistry(),
		settings.Watch.MaxReindexPerSecond)

	cli.SetServices(cli.Services{
		Search:   search,
		Indexer:  indexer,
		Settings: settingsService,
		Store:    store,
	})
	cli.SetVersion(version)

	return cli.Execute()
}
