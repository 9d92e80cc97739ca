package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskdex/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive search interface.

Results update as you type, newest first while the query is empty.

Controls:
  ↑/↓        - Navigate results
  PgUp/PgDn  - Previous / next page
  Tab        - Cycle result type
  Ctrl+F     - Toggle fuzzy matching
  Ctrl+R     - Reload workspaces from the store
  Esc        - Clear query
  F1         - Toggle help
  Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// newTUIApp loads the index and builds the app without starting it.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	app, err := tui.NewApp(tui.NewPorts(searchService, indexerService, settingsService))
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := ensureIndexed(cmd.Context()); err != nil {
		return nil, err
	}

	return app.WithContext(cmd.Context()), nil
}
