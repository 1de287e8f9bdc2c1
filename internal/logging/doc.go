// Package logging builds the slog loggers used across chaptersaw: a compact
// console handler for interactive use and a JSON handler for machine
// consumption, both driven by the logging section of the config.
package logging
