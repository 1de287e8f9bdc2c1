package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Tools.FFprobe != "ffprobe" || cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Extraction.OutputSuffix != "_filtered" {
		t.Fatalf("unexpected suffix default: %q", cfg.Extraction.OutputSuffix)
	}
	if cfg.Tracks.MissingLanguage != "ignore" {
		t.Fatalf("unexpected missing_language default: %q", cfg.Tracks.MissingLanguage)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("config file should not exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected default logging format, got %q", cfg.Logging.Format)
	}
}

func TestLoadOverridesAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[tools]
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"

[extraction]
parallel = true
workers = 4

[history]
enabled = true
path = "~/journal.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("config file should exist")
	}
	if cfg.Tools.FFmpeg != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("override not applied: %q", cfg.Tools.FFmpeg)
	}
	if !cfg.Extraction.Parallel || cfg.Extraction.Workers != 4 {
		t.Fatalf("extraction overrides not applied: %+v", cfg.Extraction)
	}
	if strings.HasPrefix(cfg.History.Path, "~") {
		t.Fatalf("history path not expanded: %q", cfg.History.Path)
	}
	// Unset sections keep their defaults.
	if cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("default lost for unset key: %q", cfg.Tools.FFprobe)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Extraction.Workers = -1 }},
		{"empty suffix", func(c *Config) { c.Extraction.OutputSuffix = " " }},
		{"bad missing_language", func(c *Config) { c.Tracks.MissingLanguage = "explode" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"history without path", func(c *Config) { c.History.Enabled = true; c.History.Path = "" }},
		{"empty ffprobe", func(c *Config) { c.Tools.FFprobe = "" }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
