package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var quietFlag bool

	ctx := newCommandContext(&configFlag, &quietFlag)

	rootCmd := &cobra.Command{
		Use:           "chaptersaw",
		Short:         "Extract and merge chapter-delimited segments from video files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newSplitCommand(ctx))
	rootCmd.AddCommand(newChaptersCommand(ctx))
	rootCmd.AddCommand(newTracksCommand(ctx))
	rootCmd.AddCommand(newDefaultCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
