package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"chaptersaw/internal/errs"
	"chaptersaw/internal/fileutil"
	"chaptersaw/internal/filter"
	"chaptersaw/internal/media"
)

// ExtractToSeparateFiles runs the filter pipeline per input, merging each
// file's surviving chapters into its own output named from the source stem
// plus suffix. Outputs land in outputDir when set, otherwise beside the
// source. A file with zero matching chapters succeeds with no output; a cut
// failure fails that file and the run continues.
func (r *Runner) ExtractToSeparateFiles(ctx context.Context, inputs []string, spec filter.Spec, outputDir, suffix string, opts RunOptions) ([]*media.ExtractionResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errs.Wrap(errs.ErrInvalidArgument, "split", "no input files provided", nil)
	}
	for _, input := range inputs {
		if err := media.ValidateFormat(input); err != nil {
			return nil, err
		}
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, errs.Wrap(errs.ErrExtraction, "split", "create output directory", err)
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

	for _, match := range matches {
		tasks := buildTasks([]fileMatch{match}, scratchDir)
		outcomes := r.runCuts(ctx, tasks, opts)
		segments := collect(tasks, outcomes, []fileMatch{match})
		r.emit(Event{Kind: EventFileCompleted, File: match.path, Failed: !match.result.Success})

		if len(segments) == 0 {
			r.logger.Warn("no segments extracted", "path", match.path)
			continue
		}

		output := separateOutputPath(match.path, outputDir, suffix)
		if err := r.backend.Concat(ctx, segments, output, scratchDir); err != nil {
			match.result.MarkFailed(err.Error())
			r.logger.Error("merge failed", "path", match.path, "error", err)
			continue
		}
		match.result.OutputFile = output
		r.logger.Info("file merged", "path", match.path, "output", output)
		r.emit(Event{Kind: EventMergeCompleted, File: match.path, Output: output,
			Completed: len(segments), Total: len(tasks)})
	}
	return results, nil
}

// separateOutputPath builds "{stem}{suffix}{ext}" in outputDir, or beside
// the source when outputDir is empty.
func separateOutputPath(input, outputDir, suffix string) string {
	name := fmt.Sprintf("%s%s%s", fileutil.Stem(input), suffix, filepath.Ext(input))
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}
