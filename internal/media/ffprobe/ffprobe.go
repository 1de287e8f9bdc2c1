package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Chapters []Chapter `json:"chapters"`
	Streams  []Stream  `json:"streams"`
	Format   Format    `json:"format"`
}

// Chapter describes a single chapter entry in the container metadata.
type Chapter struct {
	ID        int64             `json:"id"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// Title returns the chapter title tag, or "" when the source supplies none.
func (c Chapter) Title() string {
	return strings.TrimSpace(c.Tags["title"])
}

// StartSeconds returns the chapter start time in seconds.
func (c Chapter) StartSeconds() float64 {
	return parseFloat(c.StartTime)
}

// EndSeconds returns the chapter end time in seconds.
func (c Chapter) EndSeconds() float64 {
	return parseFloat(c.EndTime)
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	SampleRate  string            `json:"sample_rate"`
	Channels    int               `json:"channels"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

// Language returns the stream's language tag, or "" when absent.
func (s Stream) Language() string {
	return strings.TrimSpace(s.Tags["language"])
}

// Title returns the stream's title tag, or "" when absent.
func (s Stream) Title() string {
	return strings.TrimSpace(s.Tags["title"])
}

// IsDefault reports whether the default disposition flag is set.
func (s Stream) IsDefault() bool {
	return s.Disposition["default"] == 1
}

// IsForced reports whether the forced disposition flag is set.
func (s Stream) IsForced() bool {
	return s.Disposition["forced"] == 1
}

// SampleRateHz returns the sample rate in Hz, or 0 when unavailable.
func (s Stream) SampleRateHz() int {
	value := strings.TrimSpace(s.SampleRate)
	if value == "" {
		return 0
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return 0
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response. Chapters, streams, and format metadata are requested in a single
// invocation.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner",
		"-show_chapters", "-show_streams", "-show_format", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return Parse(output)
}

// Parse decodes raw ffprobe JSON. Exported so callers can parse captured
// output without a real ffprobe binary.
func Parse(output []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return 0
}
