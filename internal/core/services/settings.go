package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySearchDefaultLimit   = "search.default_limit"
	KeySearchFuzzyThreshold = "search.fuzzy_threshold"
	KeySearchFuzzyStrategy  = "search.fuzzy_strategy"
	KeySearchSnippetLength  = "search.snippet_length"
	KeySearchHighlightOpen  = "search.highlight_open"
	KeySearchHighlightClose = "search.highlight_close"
	KeyStorageDataDir       = "storage.data_dir"
	KeyWatchEnabled         = "watch.enabled"
	KeyWatchPath            = "watch.path"
	KeyWatchRate            = "watch.max_reindex_per_second"
	KeyServerAddr           = "server.addr"
	KeyServerShutdown       = "server.shutdown_timeout"
)

// SettingKeys lists every recognised configuration key.
func SettingKeys() []string {
	return []string{
		KeySearchDefaultLimit, KeySearchFuzzyThreshold, KeySearchFuzzyStrategy,
		KeySearchSnippetLength, KeySearchHighlightOpen, KeySearchHighlightClose,
		KeyStorageDataDir,
		KeyWatchEnabled, KeyWatchPath, KeyWatchRate,
		KeyServerAddr, KeyServerShutdown,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset or invalid
// values from the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			DefaultLimit:   s.getInt(KeySearchDefaultLimit, defaults.Search.DefaultLimit),
			FuzzyThreshold: s.getFloat(KeySearchFuzzyThreshold, defaults.Search.FuzzyThreshold),
			FuzzyStrategy:  s.getFuzzyStrategy(defaults.Search.FuzzyStrategy),
			SnippetLength:  s.getInt(KeySearchSnippetLength, defaults.Search.SnippetLength),
			HighlightOpen:  s.getString(KeySearchHighlightOpen, defaults.Search.HighlightOpen),
			HighlightClose: s.getString(KeySearchHighlightClose, defaults.Search.HighlightClose),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(KeyStorageDataDir),
		},
		Watch: domain.WatchSettings{
			Enabled:             s.getBool(KeyWatchEnabled, defaults.Watch.Enabled),
			Path:                s.configStore.GetString(KeyWatchPath),
			MaxReindexPerSecond: s.getFloat(KeyWatchRate, defaults.Watch.MaxReindexPerSecond),
		},
		Server: domain.ServerSettings{
			Addr:            s.getString(KeyServerAddr, defaults.Server.Addr),
			ShutdownTimeout: s.getDuration(KeyServerShutdown, defaults.Server.ShutdownTimeout),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		KeySearchDefaultLimit:   settings.Search.DefaultLimit,
		KeySearchFuzzyThreshold: settings.Search.FuzzyThreshold,
		KeySearchFuzzyStrategy:  settings.Search.FuzzyStrategy.String(),
		KeySearchSnippetLength:  settings.Search.SnippetLength,
		KeySearchHighlightOpen:  settings.Search.HighlightOpen,
		KeySearchHighlightClose: settings.Search.HighlightClose,
		KeyStorageDataDir:       settings.Storage.DataDir,
		KeyWatchEnabled:         settings.Watch.Enabled,
		KeyWatchPath:            settings.Watch.Path,
		KeyWatchRate:            settings.Watch.MaxReindexPerSecond,
		KeyServerAddr:           settings.Server.Addr,
		KeyServerShutdown:       settings.Server.ShutdownTimeout.String(),
	}
	if err := s.configStore.SetAll(values); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Set parses value for key, validates the resulting settings and saves them.
//
//nolint:gocyclo // One case per configuration key
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeySearchDefaultLimit:
		settings.Search.DefaultLimit, err = strconv.Atoi(value)
	case KeySearchFuzzyThreshold:
		settings.Search.FuzzyThreshold, err = strconv.ParseFloat(value, 64)
	case KeySearchFuzzyStrategy:
		settings.Search.FuzzyStrategy = domain.FuzzyStrategy(value)
	case KeySearchSnippetLength:
		settings.Search.SnippetLength, err = strconv.Atoi(value)
	case KeySearchHighlightOpen:
		settings.Search.HighlightOpen = value
	case KeySearchHighlightClose:
		settings.Search.HighlightClose = value
	case KeyStorageDataDir:
		settings.Storage.DataDir = value
	case KeyWatchEnabled:
		settings.Watch.Enabled, err = strconv.ParseBool(value)
	case KeyWatchPath:
		settings.Watch.Path = value
	case KeyWatchRate:
		settings.Watch.MaxReindexPerSecond, err = strconv.ParseFloat(value, 64)
	case KeyServerAddr:
		settings.Server.Addr = value
	case KeyServerShutdown:
		settings.Server.ShutdownTimeout, err = time.ParseDuration(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getFuzzyStrategy(defaultVal domain.FuzzyStrategy) domain.FuzzyStrategy {
	val := s.configStore.GetString(KeySearchFuzzyStrategy)
	if val == "" {
		return defaultVal
	}
	strategy := domain.FuzzyStrategy(val)
	if !strategy.IsValid() {
		return defaultVal
	}
	return strategy
}
