package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [workspace-id]",
	Short: "Rebuild the index from the store",
	Long: `Reloads one workspace, or every stored workspace when no id is given,
from the local store into the index and reports what was indexed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errIndexerNotConfigured
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		if err := indexerService.Reindex(ctx, args[0]); err != nil {
			return err
		}
		return printIndexStatus(out, args[0])
	}

	if workspaceStore == nil {
		return errors.New("workspace store not configured")
	}
	workspaces, err := workspaceStore.ListWorkspaces(ctx)
	if err != nil {
		return fmt.Errorf("list workspaces: %w", err)
	}
	if len(workspaces) == 0 {
		fmt.Fprintln(out, "No workspaces stored. Import one with 'taskdex import <file>'.")
		return nil
	}

	reindexErr := indexerService.ReindexAll(ctx)
	for _, ws := range workspaces {
		if err := printIndexStatus(out, ws.ID); err != nil {
			return err
		}
	}
	return reindexErr
}

func printIndexStatus(out io.Writer, workspaceID string) error {
	status, err := indexerService.Status(workspaceID)
	if err != nil {
		return err
	}
	if status.LastError != nil {
		fmt.Fprintf(out, "%s: failed: %v\n", workspaceID, status.LastError)
		return nil
	}
	fmt.Fprintf(out, "%s: %d tasks, %d pages, %d members (indexed %s)\n",
		workspaceID, status.Tasks, status.Pages, status.Members,
		status.LastIndexed.Local().Format(time.DateTime))
	return nil
}
