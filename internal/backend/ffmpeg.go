package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"chaptersaw/internal/errs"
	"chaptersaw/internal/media"
	"chaptersaw/internal/media/ffprobe"
)

var commandContext = exec.CommandContext

// Option configures the FFmpeg backend.
type Option func(*FFmpeg)

// WithFFmpeg overrides the ffmpeg binary.
func WithFFmpeg(binary string) Option {
	return func(b *FFmpeg) {
		if binary != "" {
			b.ffmpeg = binary
		}
	}
}

// WithFFprobe overrides the ffprobe binary.
func WithFFprobe(binary string) Option {
	return func(b *FFmpeg) {
		if binary != "" {
			b.ffprobe = binary
		}
	}
}

// WithMkvpropedit overrides the mkvpropedit binary.
func WithMkvpropedit(binary string) Option {
	return func(b *FFmpeg) {
		if binary != "" {
			b.mkvpropedit = binary
		}
	}
}

// FFmpeg implements Backend by shelling out to the FFmpeg toolchain plus
// mkvpropedit for property edits.
type FFmpeg struct {
	ffmpeg      string
	ffprobe     string
	mkvpropedit string
}

// NewFFmpeg constructs an FFmpeg backend using PATH defaults.
func NewFFmpeg(opts ...Option) *FFmpeg {
	b := &FFmpeg{ffmpeg: "ffmpeg", ffprobe: "ffprobe", mkvpropedit: "mkvpropedit"}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Chapters probes path for chapter markers.
func (b *FFmpeg) Chapters(ctx context.Context, path string) ([]media.Chapter, error) {
	result, err := b.inspect(ctx, path)
	if err != nil {
		return nil, err
	}
	return chaptersFromProbe(result), nil
}

// Tracks probes path for stream metadata.
func (b *FFmpeg) Tracks(ctx context.Context, path string) ([]media.Track, error) {
	result, err := b.inspect(ctx, path)
	if err != nil {
		return nil, err
	}
	return tracksFromProbe(result), nil
}

func chaptersFromProbe(result ffprobe.Result) []media.Chapter {
	chapters := make([]media.Chapter, 0, len(result.Chapters))
	for idx, entry := range result.Chapters {
		title := entry.Title()
		if title == "" {
			title = fmt.Sprintf("Chapter %d", idx+1)
		}
		chapters = append(chapters, media.Chapter{
			Title:     title,
			StartTime: entry.StartSeconds(),
			EndTime:   entry.EndSeconds(),
			Index:     idx,
		})
	}
	return chapters
}

func tracksFromProbe(result ffprobe.Result) []media.Track {
	tracks := make([]media.Track, 0, len(result.Streams))
	for _, stream := range result.Streams {
		track := media.Track{
			ID:       stream.Index,
			Type:     media.ParseTrackType(stream.CodecType),
			Codec:    stream.CodecName,
			Language: stream.Language(),
			Name:     stream.Title(),
			Default:  stream.IsDefault(),
			Forced:   stream.IsForced(),
		}
		switch track.Type {
		case media.TrackAudio:
			track.Channels = stream.Channels
			track.SampleRate = stream.SampleRateHz()
		case media.TrackVideo:
			track.Width = stream.Width
			track.Height = stream.Height
		}
		tracks = append(tracks, track)
	}
	return tracks
}

func (b *FFmpeg) inspect(ctx context.Context, path string) (ffprobe.Result, error) {
	if _, err := os.Stat(path); err != nil {
		return ffprobe.Result{}, errs.Wrap(errs.ErrExtraction, "probe", "input file not found: "+path, nil)
	}
	result, err := ffprobe.Inspect(ctx, b.ffprobe, path)
	if err != nil {
		return ffprobe.Result{}, errs.Wrap(errs.ErrExtraction, "probe", path, err)
	}
	return result, nil
}

// Cut extracts one chapter's time range via stream copy.
func (b *FFmpeg) Cut(ctx context.Context, input string, chapter media.Chapter, output string) error {
	args := []string{
		"-i", input,
		"-ss", formatSeconds(chapter.StartTime),
		"-to", formatSeconds(chapter.EndTime),
		"-c", "copy",
		"-y", output,
	}
	cmd := commandContext(ctx, b.ffmpeg, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errs.Wrap(errs.ErrExtraction, "cut",
			fmt.Sprintf("chapter %q from %s: %s", chapter.Title, filepath.Base(input), tail(out)), err)
	}
	return nil
}

// Concat joins the ordered segments with the concat demuxer.
func (b *FFmpeg) Concat(ctx context.Context, segments []string, output, scratchDir string) error {
	if len(segments) == 0 {
		return errs.Wrap(errs.ErrExtraction, "concat", "no segments to merge", nil)
	}

	manifest, err := BuildManifest(segments)
	if err != nil {
		return errs.Wrap(errs.ErrExtraction, "concat", "build manifest", err)
	}
	manifestPath := filepath.Join(scratchDir, "concat_list.txt")
	if err := os.WriteFile(manifestPath, manifest, 0o644); err != nil {
		return errs.Wrap(errs.ErrExtraction, "concat", "write manifest", err)
	}

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		"-y", output,
	}
	cmd := commandContext(ctx, b.ffmpeg, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errs.Wrap(errs.ErrExtraction, "concat", tail(out), err)
	}
	return nil
}

// EditProperties applies all edits in a single mkvpropedit invocation. The
// mkvpropedit binary is resolved lazily; its absence is not an init failure.
func (b *FFmpeg) EditProperties(ctx context.Context, path string, edits []PropertyEdit) error {
	if len(edits) == 0 {
		return nil
	}
	if _, err := exec.LookPath(b.mkvpropedit); err != nil {
		return errs.Wrap(errs.ErrToolNotFound, "edit properties", b.mkvpropedit, err)
	}

	args := []string{path}
	for _, edit := range edits {
		// mkvpropedit track selectors are 1-based in file order.
		args = append(args,
			"--edit", "track:"+strconv.Itoa(edit.TrackID+1),
			"--set", edit.Key+"="+edit.Value,
		)
	}
	cmd := commandContext(ctx, b.mkvpropedit, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errs.Wrap(errs.ErrExtraction, "edit properties",
			filepath.Base(path)+": "+tail(out), err)
	}
	return nil
}

// BuildManifest renders the concat demuxer file list: one single-quoted
// absolute path per line, in segment order.
func BuildManifest(segments []string) ([]byte, error) {
	var sb strings.Builder
	for _, segment := range segments {
		abs, err := filepath.Abs(segment)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", segment, err)
		}
		escaped := strings.ReplaceAll(abs, "'", `'\''`)
		sb.WriteString("file '")
		sb.WriteString(escaped)
		sb.WriteString("'\n")
	}
	return []byte(sb.String()), nil
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// tail trims process output down to the portion worth carrying in an error.
func tail(out []byte) string {
	text := strings.TrimSpace(string(out))
	const limit = 400
	if len(text) > limit {
		text = "..." + text[len(text)-limit:]
	}
	return text
}

var _ Backend = (*FFmpeg)(nil)
