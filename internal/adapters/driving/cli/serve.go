package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpapi "github.com/custodia-labs/taskdex/internal/adapters/driving/http"
	"github.com/custodia-labs/taskdex/internal/logger"
)

var (
	serveAddr     string
	serveWatchDir string
	serveQuiet    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Long: `Starts the JSON search API.

Endpoints:
  GET  /healthz
  GET  /api/search?q=...&type=task&status=todo&limit=20&offset=0
  GET  /api/suggest?q=...&limit=10
  GET  /api/stats
  POST /api/workspaces/{id}/reindex
  GET  /api/workspaces/{id}/status

With --watch-dir, or watch.enabled set, workspace exports dropped into the
directory are imported while the server runs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().StringVar(&serveWatchDir, "watch-dir", "", "directory of workspace exports to watch")
	serveCmd.Flags().BoolVarP(&serveQuiet, "quiet", "q", false, "disable the request log")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}

	settings := currentSettings()
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}
	dir := serveWatchDir
	if dir == "" && settings.Watch.Enabled {
		dir = settings.Watch.Path
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ensureIndexed(ctx); err != nil {
		return err
	}

	if dir != "" {
		go watchInBackground(ctx, cmd, dir)
	}

	server := httpapi.NewServer(&httpapi.Deps{
		Search:  searchService,
		Indexer: indexerService,
		Quiet:   serveQuiet,
	}, settings.Server.ShutdownTimeout)

	cmd.Printf("Listening on %s\n", addr)
	return server.Run(ctx, addr)
}

// watchInBackground runs the watcher until ctx ends. The server keeps
// running when the watcher fails.
func watchInBackground(ctx context.Context, cmd *cobra.Command, dir string) {
	if err := watchDir(ctx, cmd.OutOrStdout(), dir); err != nil {
		logger.Warn("watcher stopped: %v", err)
		cmd.PrintErrf("watcher stopped: %v\n", err)
	}
}
