package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
	"github.com/custodia-labs/taskdex/internal/logger"
)

// Prefix is prepended to every override variable name.
const Prefix = "TASKDEX_"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore reads overrides from the environment and falls through to
// the wrapped store. Writes always go to the wrapped store.
type ConfigStore struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// New wraps base with environment overrides, loading the given .env files
// (or ./.env when none are given). Missing files are ignored.
func New(base driven.ConfigStore, envFiles ...string) *ConfigStore {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Warn("Failed to load %s: %v", f, err)
			continue
		}
		logger.Debug("Loaded environment from %s", f)
	}

	return &ConfigStore{base: base, lookup: os.LookupEnv}
}

// VarName returns the environment variable that overrides key.
func VarName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return Prefix + strings.ToUpper(r.Replace(key))
}

func (s *ConfigStore) override(key string) (string, bool) {
	val, ok := s.lookup(VarName(key))
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// Get returns the raw override string, or the wrapped store's value.
func (s *ConfigStore) Get(key string) (any, bool) {
	if val, ok := s.override(key); ok {
		return val, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if val, ok := s.override(key); ok {
		return val
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value. An override that does
// not parse reads as 0.
func (s *ConfigStore) GetInt(key string) int {
	if val, ok := s.override(key); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			logger.Warn("Ignoring %s: %v", VarName(key), err)
			return 0
		}
		return n
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a floating point configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	if val, ok := s.override(key); ok {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			logger.Warn("Ignoring %s: %v", VarName(key), err)
			return 0
		}
		return f
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	if val, ok := s.override(key); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			logger.Warn("Ignoring %s: %v", VarName(key), err)
			return false
		}
		return b
	}
	return s.base.GetBool(key)
}

// Set stores a value in the wrapped store. An active override still wins
// on the next read.
func (s *ConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// SetAll stores values in the wrapped store.
func (s *ConfigStore) SetAll(values map[string]any) error {
	return s.base.SetAll(values)
}

// Save persists the wrapped store.
func (s *ConfigStore) Save() error {
	return s.base.Save()
}

// Load reloads the wrapped store.
func (s *ConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the wrapped store's path.
func (s *ConfigStore) Path() string {
	return s.base.Path()
}
