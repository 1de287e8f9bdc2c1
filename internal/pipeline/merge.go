package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"chaptersaw/internal/errs"
	"chaptersaw/internal/filter"
	"chaptersaw/internal/media"
)

// ExtractAndMerge scans every input, cuts the chapters surviving the filter,
// and merges all segments into outputFile in input order. The returned slice
// has one result per input in input order. Files whose chapters all fail to
// cut are reported as failed; the merge still happens with whatever segments
// succeeded. An exclusive advisory lock on the output guards against two
// runs clobbering the same file.
func (r *Runner) ExtractAndMerge(ctx context.Context, inputs []string, outputFile string, spec filter.Spec, opts RunOptions) ([]*media.ExtractionResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errs.Wrap(errs.ErrInvalidArgument, "merge", "no input files provided", nil)
	}
	for _, input := range inputs {
		if err := media.ValidateFormat(input); err != nil {
			return nil, err
		}
	}

	scratchDir, err := r.makeScratchDir()
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(scratchDir)

	results, matches, err := r.scan(ctx, inputs, spec)
	if err != nil {
		return nil, err
	}
	if totalMatched(matches) == 0 {
		return nil, errs.Wrap(errs.ErrExtraction, "merge",
			fmt.Sprintf("no chapters matching %q found in any input files", spec.Description()), nil)
	}

	tasks := buildTasks(matches, scratchDir)
	outcomes := r.runCuts(ctx, tasks, opts)
	segments := collect(tasks, outcomes, matches)
	for _, match := range matches {
		r.emit(Event{Kind: EventFileCompleted, File: match.path, Failed: !match.result.Success})
	}

	if len(segments) == 0 {
		r.logger.Warn("no segments extracted, skipping merge", "output", outputFile)
		return results, nil
	}

	if dir := filepath.Dir(outputFile); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.Wrap(errs.ErrExtraction, "merge", "create output directory", err)
		}
	}

	lock := flock.New(outputFile + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errs.Wrap(errs.ErrExtraction, "merge", "acquire output lock", err)
	}
	if !locked {
		return nil, errs.Wrap(errs.ErrExtraction, "merge",
			fmt.Sprintf("output %s is locked by another run", outputFile), nil)
	}
	defer lock.Unlock()

	if err := r.backend.Concat(ctx, segments, outputFile, scratchDir); err != nil {
		return nil, err
	}
	for _, match := range matches {
		if len(match.result.ChaptersExtracted) > 0 {
			match.result.OutputFile = outputFile
		}
	}
	r.logger.Info("merge complete", "output", outputFile, "segments", len(segments))
	r.emit(Event{Kind: EventMergeCompleted, Output: outputFile, Completed: len(segments), Total: len(tasks)})

	return results, nil
}

func totalMatched(matches []fileMatch) int {
	var total int
	for _, match := range matches {
		total += len(match.chapters)
	}
	return total
}
