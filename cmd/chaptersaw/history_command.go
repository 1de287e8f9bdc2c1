package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent runs from the journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("history is disabled in the configuration")
			}
			defer store.Close()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				runID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil || runID <= 0 {
					return fmt.Errorf("invalid run id %q", args[0])
				}
				records, err := store.RunFiles(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintf(out, "No records for run %d\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					status := "ok"
					if !record.Success {
						status = "failed: " + record.ErrorMessage
					}
					output := record.OutputFile
					if output != "" {
						output = filepath.Base(output)
					}
					rows = append(rows, []string{
						filepath.Base(record.SourceFile),
						fmt.Sprintf("%d/%d", record.ChaptersMatched, record.ChaptersFound),
						strconv.Itoa(record.ChaptersExtracted),
						output,
						status,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Matched", "Extracted", "Output", "Status"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					run.StartedAt.Local().Format(time.DateTime),
					run.Mode,
					run.Filter,
					fmt.Sprintf("%d/%d ok", run.FilesTotal-run.FilesFailed, run.FilesTotal),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Started", "Mode", "Filter", "Files"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
