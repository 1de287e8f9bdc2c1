package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"chaptersaw/internal/fileutil"
	"chaptersaw/internal/filter"
	"chaptersaw/internal/history"
	"chaptersaw/internal/media"
)

// filterFlags is the shared keyword/pattern flag set for extraction commands.
type filterFlags struct {
	keyword       string
	pattern       string
	caseSensitive bool
	exclude       bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.keyword, "keyword", "k", "", "Keyword to match against chapter titles")
	cmd.Flags().StringVarP(&f.pattern, "regex", "r", "", "Regular expression to match against chapter titles")
	cmd.Flags().BoolVar(&f.caseSensitive, "case-sensitive", false, "Match case-sensitively")
	cmd.Flags().BoolVarP(&f.exclude, "exclude", "e", false, "Keep chapters that do NOT match")
}

func (f *filterFlags) spec() filter.Spec {
	return filter.Spec{
		Keyword:       f.keyword,
		Pattern:       f.pattern,
		CaseSensitive: f.caseSensitive,
		Exclude:       f.exclude,
	}
}

// resolveInputs expands the -i arguments into concrete supported paths.
func resolveInputs(patterns []string) ([]string, error) {
	inputs, err := fileutil.ResolveInputs(patterns)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no supported video files among the inputs")
	}
	return inputs, nil
}

// printResults renders the per-file outcome table and returns whether every
// file succeeded.
func printResults(out io.Writer, results []*media.ExtractionResult) bool {
	rows := make([][]string, 0, len(results))
	allOK := true
	for _, result := range results {
		status := "ok"
		if !result.Success {
			status = "failed: " + result.ErrorMessage
			allOK = false
		}
		output := result.OutputFile
		if output != "" {
			output = filepath.Base(output)
		}
		rows = append(rows, []string{
			filepath.Base(result.SourceFile),
			fmt.Sprintf("%d/%d", result.ChaptersMatched, result.ChaptersFound),
			fmt.Sprintf("%d", len(result.ChaptersExtracted)),
			output,
			status,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Matched", "Extracted", "Output", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	))
	return allOK
}

// recordRun journals the invocation when history is enabled. Journal
// failures are reported but never fail the run.
func recordRun(ctx *commandContext, out io.Writer, run history.Run, results []*media.ExtractionResult) {
	store, err := ctx.openHistory()
	if err != nil {
		fmt.Fprintf(out, "warning: history unavailable: %v\n", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.RecordRun(context.Background(), run, results); err != nil {
		fmt.Fprintf(out, "warning: record history: %v\n", err)
	}
}

func newRun(mode, filterDesc, output string, started time.Time) history.Run {
	return history.Run{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Mode:       mode,
		Filter:     filterDesc,
		Output:     output,
	}
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
	return d.String()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
