package driven

// ConfigStore holds flat, dot-separated configuration keys such as
// "search.default_limit". The typed getters return the zero value for
// missing keys and for values of another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt returns whole numbers only.
	GetInt(key string) int

	// GetFloat widens integers.
	GetFloat(key string) float64

	GetBool(key string) bool

	// Set stores one value and persists it.
	Set(key string, value any) error

	// SetAll stores several values and persists once.
	SetAll(values map[string]any) error

	// Save persists the current configuration.
	Save() error

	// Load replaces the in-memory configuration with the persisted one.
	Load() error

	// Path identifies where the configuration is persisted.
	Path() string
}
