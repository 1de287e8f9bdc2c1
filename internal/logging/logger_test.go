package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.With("component", "pipeline").Info("file scanned", "chapters", 12, "path", "/v/a b.mkv")

	line := buf.String()
	if !strings.Contains(line, " INFO pipeline: file scanned") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "chapters=12") {
		t.Fatalf("missing int attr: %q", line)
	}
	if !strings.Contains(line, `path="/v/a b.mkv"`) {
		t.Fatalf("value with spaces should be quoted: %q", line)
	}
}

func TestConsoleHandlerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	handler := newConsoleHandler(&buf, levelVar)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be suppressed at warn level")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should pass at warn level")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewJSONFormat(t *testing.T) {
	logger, err := New(Options{Format: "json", Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
}
