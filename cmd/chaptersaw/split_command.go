package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"chaptersaw/internal/pipeline"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var (
		inputs    []string
		outputDir string
		suffix    string
		flags     filterFlags
		parallel  bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Extract matching chapters into one filtered file per input",
		Example: `  chaptersaw split -i "season1/*.mkv" -k "Episode" -d filtered/
  chaptersaw split -i movie.mkv -r 'Trailer' -e --suffix _clean`,
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

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(suffix) == "" {
				suffix = cfg.Extraction.OutputSuffix
			}

			progress := newProgressObserver(ctx.quiet())
			runner, err := ctx.newRunner(progress.asObserver())
			if err != nil {
				return err
			}
			runOpts := pipeline.RunOptions{Parallel: parallel || cfg.Extraction.Parallel, Workers: workers}
			if workers == 0 {
				runOpts.Workers = cfg.Extraction.Workers
			}

			started := time.Now()
			results, err := runner.ExtractToSeparateFiles(cmd.Context(), resolved, spec, outputDir, suffix, runOpts)
			progress.finish()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			allOK := printResults(out, results)
			recordRun(ctx, out, newRun("split", spec.Description(), outputDir, started), results)
			if !allOK {
				return fmt.Errorf("one or more files failed; see table above")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Input file or glob pattern (repeatable)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Directory for filtered outputs (default: beside each source)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Output file name suffix (default from config)")
	flags.register(cmd)
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Extract segments on a worker pool")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 = number of CPUs)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
