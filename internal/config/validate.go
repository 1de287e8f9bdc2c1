package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateTracks(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		return errors.New("tools.ffprobe must be set")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.Workers < 0 {
		return errors.New("extraction.workers must be >= 0 (0 uses the CPU count)")
	}
	if strings.TrimSpace(c.Extraction.OutputSuffix) == "" {
		return errors.New("extraction.output_suffix must be set")
	}
	return nil
}

func (c *Config) validateTracks() error {
	switch c.Tracks.MissingLanguage {
	case "ignore", "warn":
		return nil
	default:
		return fmt.Errorf("tracks.missing_language must be %q or %q", "ignore", "warn")
	}
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q", "console", "json")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
}
