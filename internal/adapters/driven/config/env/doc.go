// Package env layers environment variable overrides over another
// ConfigStore. A key such as "search.default_limit" is overridden by
// TASKDEX_SEARCH_DEFAULT_LIMIT. Variables from a .env file in the working
// directory are loaded first; variables already set take precedence.
package env
