package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"chaptersaw/internal/backend"
	"chaptersaw/internal/errs"
	"chaptersaw/internal/fileutil"
	"chaptersaw/internal/filter"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/media"
)

// Runner orchestrates scan, extraction, and merge against a media backend.
type Runner struct {
	backend  backend.Backend
	logger   *slog.Logger
	observer Observer
	tempDir  string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for pipeline progress records.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver attaches a progress observer.
func WithObserver(observer Observer) Option {
	return func(r *Runner) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// WithTempDir overrides the base directory for scratch space. Empty means the
// system temp directory.
func WithTempDir(dir string) Option {
	return func(r *Runner) {
		r.tempDir = dir
	}
}

// NewRunner constructs a pipeline runner over the given backend.
func NewRunner(b backend.Backend, opts ...Option) *Runner {
	runner := &Runner{
		backend:  b,
		logger:   logging.Discard(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(runner)
	}
	runner.logger = runner.logger.With("component", "pipeline")
	return runner
}

// RunOptions controls phase-two execution for a single invocation.
type RunOptions struct {
	// Parallel switches segment extraction to a worker pool.
	Parallel bool
	// Workers bounds the pool size; zero or negative means GOMAXPROCS.
	Workers int
}

// fileMatch pairs one scanned input with its surviving chapters.
type fileMatch struct {
	path     string
	chapters []media.Chapter
	result   *media.ExtractionResult
}

// scan probes and filters every input. Missing files become failed results
// and are skipped; a file that probes cleanly but has zero chapter markers
// aborts the run, as does any probe or pattern error.
func (r *Runner) scan(ctx context.Context, inputs []string, spec filter.Spec) ([]*media.ExtractionResult, []fileMatch, error) {
	results := make([]*media.ExtractionResult, 0, len(inputs))
	matches := make([]fileMatch, 0, len(inputs))

	for i, input := range inputs {
		result := media.NewResult(input)
		results = append(results, result)

		if _, err := os.Stat(input); err != nil {
			result.MarkFailed("File not found")
			r.logger.Warn("input file missing", "path", input)
			r.emit(Event{Kind: EventFileScanned, File: input, Completed: i + 1, Total: len(inputs), Failed: true})
			continue
		}

		chapters, err := r.backend.Chapters(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		if len(chapters) == 0 {
			return nil, nil, errs.Wrap(errs.ErrExtraction, "scan",
				fmt.Sprintf("no chapter information found in %s", input), nil)
		}
		result.MarkFound(len(chapters))

		matched, err := spec.Apply(chapters)
		if err != nil {
			return nil, nil, err
		}
		result.MarkMatched(len(matched))
		r.logger.Info("file scanned", "path", input,
			"chapters", len(chapters), "matched", len(matched))
		r.emit(Event{Kind: EventFileScanned, File: input, Completed: i + 1, Total: len(inputs)})

		if len(matched) > 0 {
			matches = append(matches, fileMatch{path: input, chapters: matched, result: result})
		}
	}
	return results, matches, nil
}

// cutTask is one chapter extraction bound to a fixed arena slot. Segment
// order is decided when tasks are built, so workers never coordinate on
// ordering.
type cutTask struct {
	seq     int
	fileIdx int
	input   string
	chapter media.Chapter
	output  string
}

// buildTasks lays out the cut arena for a group of matched files. Segment
// names carry the file ordinal so identical stems from different directories
// never collide inside the shared scratch space.
func buildTasks(matches []fileMatch, scratchDir string) []cutTask {
	var tasks []cutTask
	for fileIdx, match := range matches {
		stem := fileutil.Stem(match.path)
		ext := filepath.Ext(match.path)
		for ordinal, chapter := range match.chapters {
			name := fmt.Sprintf("%03d_%s_segment_%d%s", fileIdx, stem, ordinal, ext)
			tasks = append(tasks, cutTask{
				seq:     len(tasks),
				fileIdx: fileIdx,
				input:   match.path,
				chapter: chapter,
				output:  filepath.Join(scratchDir, name),
			})
		}
	}
	return tasks
}

// cutOutcome is what a worker leaves behind in its arena slot.
type cutOutcome struct {
	err     error
	skipped bool
}

// collect walks the arena in slot order, updating per-file results and
// assembling the ordered segment list. Extraction order on each result
// equals that file's filtered chapter order regardless of how cuts were
// scheduled.
func collect(tasks []cutTask, outcomes []cutOutcome, matches []fileMatch) []string {
	segments := make([]string, 0, len(tasks))
	for _, task := range tasks {
		outcome := outcomes[task.seq]
		result := matches[task.fileIdx].result
		switch {
		case outcome.err != nil:
			result.MarkFailed(outcome.err.Error())
		case outcome.skipped:
		default:
			result.RecordExtracted(task.chapter)
			segments = append(segments, task.output)
		}
	}
	return segments
}

// makeScratchDir creates a unique scratch directory for this invocation.
func (r *Runner) makeScratchDir() (string, error) {
	base := r.tempDir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "chaptersaw-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrap(errs.ErrExtraction, "scratch", "create temp directory", err)
	}
	return dir, nil
}

func (r *Runner) emit(event Event) {
	r.observer.OnEvent(event)
}
