// Package media defines the domain values shared across the extraction
// pipeline: chapters, tracks, per-file extraction results, and the supported
// container format gate.
package media
