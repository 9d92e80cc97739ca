package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/watch"
)

var errNoWatchDir = errors.New("no watch directory: pass one or set watch.path")

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import workspace exports as they change",
	Long: `Watches a directory of workspace export files (<workspace-id>.json).
Existing files are imported on start. Created or rewritten files are
imported and reindexed; removed files drop their workspace.

The directory defaults to the watch.path setting. Reindexing is throttled
by watch.max_reindex_per_second. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := currentSettings().Watch.Path
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errNoWatchDir
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchDir(ctx, cmd.OutOrStdout(), dir)
}

// watchDir feeds changes under dir to the indexer until ctx ends.
func watchDir(ctx context.Context, out io.Writer, dir string) error {
	if indexerService == nil {
		return errIndexerNotConfigured
	}
	if workspaceStore == nil {
		return errors.New("workspace store not configured")
	}

	fmt.Fprintf(out, "Watching %s for workspace exports\n", dir)
	w := watch.New(dir, workspaceStore)
	defer w.Close()

	return indexerService.Watch(ctx, w)
}
