package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools contains the external executable commands the pipeline invokes.
type Tools struct {
	FFmpeg      string `toml:"ffmpeg"`
	FFprobe     string `toml:"ffprobe"`
	Mkvpropedit string `toml:"mkvpropedit"`
}

// Extraction contains pipeline behaviour settings.
type Extraction struct {
	// TempDir hosts per-invocation scratch directories. Empty means the
	// system temp directory.
	TempDir      string `toml:"temp_dir"`
	Parallel     bool   `toml:"parallel"`
	Workers      int    `toml:"workers"`
	OutputSuffix string `toml:"output_suffix"`
}

// Tracks contains track disposition editing settings.
type Tracks struct {
	// MissingLanguage decides how a requested language with no matching
	// track is reported: "ignore" or "warn".
	MissingLanguage string `toml:"missing_language"`
}

// History contains the run journal settings.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format      string   `toml:"format"`
	Level       string   `toml:"level"`
	OutputPaths []string `toml:"output_paths"`
}

// Config encapsulates all configuration values for chaptersaw.
type Config struct {
	Tools      Tools      `toml:"tools"`
	Extraction Extraction `toml:"extraction"`
	Tracks     Tracks     `toml:"tracks"`
	History    History    `toml:"history"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/chaptersaw/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The second return reports the resolved
// path, the third whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	for _, field := range []*string{&c.Extraction.TempDir, &c.History.Path} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
