// Package config loads and validates chaptersaw's TOML configuration. Load
// starts from repository defaults, overlays the config file when present,
// expands ~ in path fields, and validates the result.
package config
