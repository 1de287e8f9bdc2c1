package backend

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"chaptersaw/internal/errs"
	"chaptersaw/internal/media"
)

// CutCall records one Cut invocation against the fake.
type CutCall struct {
	Input   string
	Chapter media.Chapter
	Output  string
}

// ConcatCall records one Concat invocation against the fake.
type ConcatCall struct {
	Segments []string
	Output   string
}

// EditCall records one EditProperties invocation against the fake.
type EditCall struct {
	Path  string
	Edits []PropertyEdit
}

// Fake is an in-memory Backend for tests. It never launches processes: cuts
// and merges write placeholder files so filesystem-level assertions hold.
// Safe for concurrent use by pipeline worker pools.
type Fake struct {
	mu sync.Mutex

	ChaptersByPath map[string][]media.Chapter
	TracksByPath   map[string][]media.Track
	ProbeErrors    map[string]error

	// FailCutTitles lists chapter titles whose cuts fail.
	FailCutTitles map[string]bool
	FailConcat    bool
	FailEdit      bool

	CutCalls    []CutCall
	ConcatCalls []ConcatCall
	EditCalls   []EditCall
}

// NewFake returns an empty fake backend.
func NewFake() *Fake {
	return &Fake{
		ChaptersByPath: map[string][]media.Chapter{},
		TracksByPath:   map[string][]media.Track{},
		ProbeErrors:    map[string]error{},
		FailCutTitles:  map[string]bool{},
	}
}

func (f *Fake) Chapters(_ context.Context, path string) ([]media.Chapter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ProbeErrors[path]; err != nil {
		return nil, err
	}
	return append([]media.Chapter(nil), f.ChaptersByPath[path]...), nil
}

func (f *Fake) Tracks(_ context.Context, path string) ([]media.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ProbeErrors[path]; err != nil {
		return nil, err
	}
	return append([]media.Track(nil), f.TracksByPath[path]...), nil
}

func (f *Fake) Cut(_ context.Context, input string, chapter media.Chapter, output string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CutCalls = append(f.CutCalls, CutCall{Input: input, Chapter: chapter, Output: output})
	if f.FailCutTitles[chapter.Title] {
		return errs.Wrap(errs.ErrExtraction, "cut", "chapter "+chapter.Title, nil)
	}
	return os.WriteFile(output, []byte("segment:"+chapter.Title), 0o644)
}

func (f *Fake) Concat(_ context.Context, segments []string, output, scratchDir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(segments) == 0 {
		return errs.Wrap(errs.ErrExtraction, "concat", "no segments to merge", nil)
	}
	f.ConcatCalls = append(f.ConcatCalls, ConcatCall{
		Segments: append([]string(nil), segments...),
		Output:   output,
	})
	if f.FailConcat {
		return errs.Wrap(errs.ErrExtraction, "concat", "forced failure", nil)
	}
	manifest, err := BuildManifest(segments)
	if err != nil {
		return err
	}
	if scratchDir != "" {
		if err := os.WriteFile(filepath.Join(scratchDir, "concat_list.txt"), manifest, 0o644); err != nil {
			return err
		}
	}
	return os.WriteFile(output, []byte("merged"), 0o644)
}

func (f *Fake) EditProperties(_ context.Context, path string, edits []PropertyEdit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EditCalls = append(f.EditCalls, EditCall{Path: path, Edits: append([]PropertyEdit(nil), edits...)})
	if f.FailEdit {
		return errs.Wrap(errs.ErrExtraction, "edit properties", "forced failure", nil)
	}
	return nil
}

var _ Backend = (*Fake)(nil)
