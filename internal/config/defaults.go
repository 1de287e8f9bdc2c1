package config

const (
	defaultFFmpeg          = "ffmpeg"
	defaultFFprobe         = "ffprobe"
	defaultMkvpropedit     = "mkvpropedit"
	defaultOutputSuffix    = "_filtered"
	defaultMissingLanguage = "ignore"
	defaultHistoryPath     = "~/.local/share/chaptersaw/history.db"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpeg:      defaultFFmpeg,
			FFprobe:     defaultFFprobe,
			Mkvpropedit: defaultMkvpropedit,
		},
		Extraction: Extraction{
			OutputSuffix: defaultOutputSuffix,
		},
		Tracks: Tracks{
			MissingLanguage: defaultMissingLanguage,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
