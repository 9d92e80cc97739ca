package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}
	if err := ensureIndexed(cmd.Context()); err != nil {
		return err
	}

	stats := searchService.Stats()
	if statsJSON {
		return writeJSON(cmd.OutOrStdout(), stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Documents: %d\n", stats.Documents)
	fmt.Fprintf(out, "Tokens:    %d\n", stats.Tokens)

	if len(stats.ByType) > 0 {
		fmt.Fprintln(out, "\nBy type:")
		for _, t := range domain.AllResultTypes() {
			if n := stats.ByType[t]; n > 0 {
				fmt.Fprintf(out, "  %-10s %d\n", t, n)
			}
		}
	}

	if len(stats.ByWorkspace) > 0 {
		fmt.Fprintln(out, "\nBy workspace:")
		ids := make([]string, 0, len(stats.ByWorkspace))
		for id := range stats.ByWorkspace {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(out, "  %-10s %d\n", id, stats.ByWorkspace[id])
		}
	}
	return nil
}
