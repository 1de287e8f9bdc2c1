// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no chaptersaw-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing chapters and streams
//   - Chapter: a single chapter entry with start/end times and title tag
//   - Stream: individual audio/video/subtitle stream properties including
//     disposition flags and metadata tags
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// ffprobe reports numeric fields as strings; helpers on Chapter and Stream
// perform the conversions.
package ffprobe
