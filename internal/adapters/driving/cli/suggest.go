package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	suggestLimit int
	suggestJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Complete the last word of a query",
	Long: `Lists indexed words that start with the last word of the given text,
shortest first. Useful for shell completion and search-as-you-type.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 10, "maximum number of suggestions")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as a JSON array")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}
	if suggestLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", suggestLimit)
	}
	if err := ensureIndexed(cmd.Context()); err != nil {
		return err
	}

	suggestions := searchService.GetSuggestions(args[0], suggestLimit)
	if suggestJSON {
		return writeJSON(cmd.OutOrStdout(), suggestions)
	}
	for _, s := range suggestions {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}
