package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters <file>...",
		Short: "List the chapter markers of video files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveInputs(args)
			if err != nil {
				return err
			}
			if err := ctx.preflight(); err != nil {
				return err
			}
			b, err := ctx.newBackend()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range resolved {
				chapters, err := b.Chapters(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", path)
				if len(chapters) == 0 {
					fmt.Fprintln(out, "No chapter markers found")
					continue
				}
				rows := make([][]string, 0, len(chapters))
				for _, chapter := range chapters {
					rows = append(rows, []string{
						fmt.Sprintf("%d", chapter.Index+1),
						chapter.Title,
						formatDuration(chapter.StartTime),
						formatDuration(chapter.EndTime),
						formatDuration(chapter.Duration()),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Title", "Start", "End", "Duration"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
				))
			}
			return nil
		},
	}
	return cmd
}
