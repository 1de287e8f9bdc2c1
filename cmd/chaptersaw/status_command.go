package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chaptersaw/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.Requirements(
				cfg.Tools.FFprobe, cfg.Tools.FFmpeg, cfg.Tools.Mkvpropedit))

			rows := make([][]string, 0, len(statuses))
			missing := false
			for _, status := range statuses {
				state := "available"
				if !status.Available {
					state = status.Detail
					if !status.Optional {
						missing = true
					}
				}
				required := "required"
				if status.Optional {
					required = "optional"
				}
				rows = append(rows, []string{status.Name, status.Command, required, state, status.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Command", "Role", "Status", "Purpose"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if missing {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
