package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/snapshot"
)

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import workspace export files",
	Long: `Reads workspace export JSON files, saves them to the local store and
indexes them. A file without a workspace id uses its file name as the id.
Records without ids are given new ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errIndexerNotConfigured
	}

	for _, path := range args {
		snap, err := snapshot.ReadFile(path)
		if err != nil {
			return err
		}
		if err := indexerService.Import(cmd.Context(), snap); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported workspace %s (%d tasks, %d pages, %d members)\n",
			snap.Workspace.ID, len(snap.Tasks), len(snap.Pages), len(snap.Members))
	}
	return nil
}
