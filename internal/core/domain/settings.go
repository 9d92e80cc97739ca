package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// FuzzyStrategy selects how query tokens are approximately matched
// against indexed tokens.
type FuzzyStrategy string

// Available fuzzy strategies.
const (
	// FuzzyJaccard compares the token sets of both strings. For two single
	// tokens this is 1 on equality and 0 otherwise, so fuzzy matching is
	// effectively exact. It is the default and the reference behaviour.
	FuzzyJaccard FuzzyStrategy = "jaccard"

	// FuzzyTrigram compares character trigram sets, so near-miss spellings
	// match. Opt-in: it raises recall and changes result sets.
	FuzzyTrigram FuzzyStrategy = "trigram"
)

// IsValid returns true if the strategy is recognised.
func (s FuzzyStrategy) IsValid() bool {
	switch s {
	case FuzzyJaccard, FuzzyTrigram:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s FuzzyStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s FuzzyStrategy) Description() string {
	switch s {
	case FuzzyJaccard:
		return "Jaccard (token set overlap)"
	case FuzzyTrigram:
		return "Trigram (character overlap)"
	default:
		return unknownDescription
	}
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// DefaultLimit is the page size used when a query gives none.
	DefaultLimit int

	// FuzzyThreshold is the exclusive lower bound on similarity for a
	// fuzzy token match.
	FuzzyThreshold float64

	// FuzzyStrategy selects the token similarity function.
	FuzzyStrategy FuzzyStrategy

	// SnippetLength is the number of content runes highlighted.
	SnippetLength int

	// HighlightOpen and HighlightClose wrap matched terms.
	HighlightOpen  string
	HighlightClose string
}

// StorageSettings configures where workspace data is kept.
type StorageSettings struct {
	// DataDir holds the SQLite database. Empty selects ~/.taskdex/data.
	DataDir string
}

// WatchSettings configures the change watcher.
type WatchSettings struct {
	// Enabled starts the watcher alongside long-running commands.
	Enabled bool

	// Path is the directory of workspace export files to watch.
	Path string

	// MaxReindexPerSecond throttles watcher-triggered reindexing.
	MaxReindexPerSecond float64
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Search  SearchSettings
	Storage StorageSettings
	Watch   WatchSettings
	Server  ServerSettings
}

// DefaultSearchSettings returns the reference search behaviour.
func DefaultSearchSettings() SearchSettings {
	return SearchSettings{
		DefaultLimit:   20,
		FuzzyThreshold: 0.7,
		FuzzyStrategy:  FuzzyJaccard,
		SnippetLength:  200,
		HighlightOpen:  "<mark>",
		HighlightClose: "</mark>",
	}
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: DefaultSearchSettings(),
		Watch: WatchSettings{
			Enabled:             false,
			MaxReindexPerSecond: 2,
		},
		Server: ServerSettings{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// Validate checks the search settings are usable.
func (s SearchSettings) Validate() error {
	if s.DefaultLimit <= 0 {
		return fmt.Errorf("%w: default limit must be positive", ErrInvalidInput)
	}
	if s.FuzzyThreshold < 0 || s.FuzzyThreshold >= 1 {
		return fmt.Errorf("%w: fuzzy threshold must be in [0, 1)", ErrInvalidInput)
	}
	if !s.FuzzyStrategy.IsValid() {
		return fmt.Errorf("%w: unknown fuzzy strategy %q", ErrInvalidInput, s.FuzzyStrategy)
	}
	if s.SnippetLength < 0 {
		return fmt.Errorf("%w: snippet length must not be negative", ErrInvalidInput)
	}
	return nil
}

// Validate checks every settings group.
func (s AppSettings) Validate() error {
	if err := s.Search.Validate(); err != nil {
		return err
	}
	if s.Watch.MaxReindexPerSecond <= 0 {
		return fmt.Errorf("%w: watch rate must be positive", ErrInvalidInput)
	}
	return nil
}
