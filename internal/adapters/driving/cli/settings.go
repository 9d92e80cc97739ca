package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change taskdex settings.

Settings are stored in ~/.taskdex/config.toml. TASKDEX_* environment
variables (for example TASKDEX_SEARCH_DEFAULT_LIMIT) override stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Validates and stores one setting.

Run 'taskdex settings show' to list the keys.`,
	Example: `  taskdex settings set search.default_limit 50
  taskdex settings set search.fuzzy_strategy trigram
  taskdex settings set watch.path ~/exports`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := settingValues(settings)
	for _, key := range services.SettingKeys() {
		cmd.Printf("%-32s %s\n", key, values[key])
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

// settingValues renders every setting under its configuration key.
func settingValues(s *domain.AppSettings) map[string]string {
	dataDir := s.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	watchPath := s.Watch.Path
	if watchPath == "" {
		watchPath = "(not set)"
	}

	return map[string]string{
		services.KeySearchDefaultLimit:   strconv.Itoa(s.Search.DefaultLimit),
		services.KeySearchFuzzyThreshold: strconv.FormatFloat(s.Search.FuzzyThreshold, 'g', -1, 64),
		services.KeySearchFuzzyStrategy:  string(s.Search.FuzzyStrategy),
		services.KeySearchSnippetLength:  strconv.Itoa(s.Search.SnippetLength),
		services.KeySearchHighlightOpen:  strconv.Quote(s.Search.HighlightOpen),
		services.KeySearchHighlightClose: strconv.Quote(s.Search.HighlightClose),
		services.KeyStorageDataDir:       dataDir,
		services.KeyWatchEnabled:         strconv.FormatBool(s.Watch.Enabled),
		services.KeyWatchPath:            watchPath,
		services.KeyWatchRate:            strconv.FormatFloat(s.Watch.MaxReindexPerSecond, 'g', -1, 64),
		services.KeyServerAddr:           s.Server.Addr,
		services.KeyServerShutdown:       s.Server.ShutdownTimeout.String(),
	}
}
