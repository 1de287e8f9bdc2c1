package backend

import (
	"context"

	"chaptersaw/internal/media"
)

// PropertyEdit is a single set operation against one track's container
// metadata. TrackID is the ffprobe stream index (0-based).
type PropertyEdit struct {
	TrackID int
	Key     string
	Value   string
}

// Backend is the capability set the pipeline needs from the external media
// toolchain. Implementations block until the underlying process exits; no
// retry is performed at this layer.
type Backend interface {
	// Chapters probes path and returns its chapter markers in container
	// order. Untitled chapters receive "Chapter {n}" (1-based).
	Chapters(ctx context.Context, path string) ([]media.Chapter, error)

	// Tracks probes path and returns its streams in container order.
	Tracks(ctx context.Context, path string) ([]media.Track, error)

	// Cut extracts the chapter's time range from input into output using
	// stream copy, overwriting output unconditionally.
	Cut(ctx context.Context, input string, chapter media.Chapter, output string) error

	// Concat losslessly joins the ordered segments into output, driving the
	// tool with a manifest written under scratchDir. Manifest order is
	// byte-identical to segment order.
	Concat(ctx context.Context, segments []string, output, scratchDir string) error

	// EditProperties applies all edits against path in one tool invocation.
	EditProperties(ctx context.Context, path string, edits []PropertyEdit) error
}
