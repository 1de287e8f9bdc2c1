package main

import (
	"log/slog"
	"strings"
	"sync"

	"chaptersaw/internal/backend"
	"chaptersaw/internal/config"
	"chaptersaw/internal/deps"
	"chaptersaw/internal/history"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/pipeline"
	"chaptersaw/internal/tracks"
)

type commandContext struct {
	configFlag *string
	quietFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, quietFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		quietFlag:  quietFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) quiet() bool {
	return c.quietFlag != nil && *c.quietFlag
}

// newBackend builds the FFmpeg backend using the configured tool commands.
func (c *commandContext) newBackend() (*backend.FFmpeg, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return backend.NewFFmpeg(
		backend.WithFFmpeg(cfg.Tools.FFmpeg),
		backend.WithFFprobe(cfg.Tools.FFprobe),
		backend.WithMkvpropedit(cfg.Tools.Mkvpropedit),
	), nil
}

// newRunner wires a pipeline runner with logging and an optional progress
// observer.
func (c *commandContext) newRunner(observer pipeline.Observer) (*pipeline.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	b, err := c.newBackend()
	if err != nil {
		return nil, err
	}
	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithTempDir(cfg.Extraction.TempDir),
	}
	if observer != nil {
		opts = append(opts, pipeline.WithObserver(observer))
	}
	return pipeline.NewRunner(b, opts...), nil
}

func (c *commandContext) newTrackEditor() (*tracks.Editor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	b, err := c.newBackend()
	if err != nil {
		return nil, err
	}
	return tracks.NewEditor(b,
		tracks.WithLogger(logger),
		tracks.WithMissingLanguagePolicy(cfg.Tracks.MissingLanguage),
	), nil
}

// preflight verifies the required external binaries before pipeline entry.
func (c *commandContext) preflight() error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	return deps.Preflight(deps.Requirements(
		cfg.Tools.FFprobe, cfg.Tools.FFmpeg, cfg.Tools.Mkvpropedit))
}

// openHistory returns the journal store, or nil when journaling is disabled.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled || strings.TrimSpace(cfg.History.Path) == "" {
		return nil, nil
	}
	return history.Open(cfg.History.Path)
}
