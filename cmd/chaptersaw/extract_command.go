package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chaptersaw/internal/filter"
	"chaptersaw/internal/pipeline"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		inputs   []string
		output   string
		flags    filterFlags
		parallel bool
		workers  int
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract matching chapters from inputs and merge them into one file",
		Example: `  chaptersaw extract -i "season1/*.mkv" -k "Episode" -o episodes.mkv
  chaptersaw extract -i a.mkv -i b.mkv -r '^Opening' -e -o no_openings.mkv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := flags.spec()
			if err := spec.Validate(); err != nil {
				return err
			}
			resolved, err := resolveInputs(inputs)
			if err != nil {
				return err
			}
			if err := ctx.preflight(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				return runDryScan(cmd, ctx, resolved, spec)
			}
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			progress := newProgressObserver(ctx.quiet())
			runner, err := ctx.newRunner(progress.asObserver())
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runOpts := pipeline.RunOptions{Parallel: parallel || cfg.Extraction.Parallel, Workers: workers}
			if workers == 0 {
				runOpts.Workers = cfg.Extraction.Workers
			}

			started := time.Now()
			results, err := runner.ExtractAndMerge(cmd.Context(), resolved, output, spec, runOpts)
			progress.finish()
			if err != nil {
				return err
			}

			allOK := printResults(out, results)
			recordRun(ctx, out, newRun("merge", spec.Description(), output, started), results)
			if !allOK {
				return fmt.Errorf("one or more files failed; see table above")
			}
			fmt.Fprintf(out, "Merged output written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Input file or glob pattern (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Merged output file")
	flags.register(cmd)
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Extract segments on a worker pool")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 = number of CPUs)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be extracted without cutting")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// runDryScan probes and filters every input, printing the surviving chapters
// without extracting anything.
func runDryScan(cmd *cobra.Command, ctx *commandContext, inputs []string, spec filter.Spec) error {
	b, err := ctx.newBackend()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var rows [][]string
	for _, input := range inputs {
		chapters, err := b.Chapters(cmd.Context(), input)
		if err != nil {
			return err
		}
		matched, err := spec.Apply(chapters)
		if err != nil {
			return err
		}
		for _, chapter := range matched {
			rows = append(rows, []string{
				input,
				chapter.Title,
				formatDuration(chapter.StartTime),
				formatDuration(chapter.EndTime),
			})
		}
		fmt.Fprintf(out, "%s: %d of %d chapters match\n", input, len(matched), len(chapters))
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"File", "Chapter", "Start", "End"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
		))
	}
	return nil
}
