package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDefaultCommand(ctx *commandContext) *cobra.Command {
	var (
		trackID      int
		audioLang    string
		subtitleLang string
	)

	cmd := &cobra.Command{
		Use:   "default <file.mkv>",
		Short: "Set default track flags in a Matroska file",
		Example: `  chaptersaw default movie.mkv --audio jpn --subtitle eng
  chaptersaw default movie.mkv --track-id 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byID := cmd.Flags().Changed("track-id")
			if byID && (audioLang != "" || subtitleLang != "") {
				return fmt.Errorf("--track-id cannot be combined with --audio or --subtitle")
			}
			editor, err := ctx.newTrackEditor()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if byID {
				if err := editor.SetDefaultTrack(cmd.Context(), args[0], trackID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Track %d is now the default\n", trackID)
				return nil
			}

			selection, err := editor.SetDefaultByLanguage(cmd.Context(), args[0], audioLang, subtitleLang)
			if err != nil {
				return err
			}
			if selection.AudioTrackID >= 0 {
				fmt.Fprintf(out, "Audio track %d is now the default\n", selection.AudioTrackID)
			} else if audioLang != "" {
				fmt.Fprintf(out, "No audio track matches language %q\n", audioLang)
			}
			if selection.SubtitleTrackID >= 0 {
				fmt.Fprintf(out, "Subtitle track %d is now the default\n", selection.SubtitleTrackID)
			} else if subtitleLang != "" {
				fmt.Fprintf(out, "No subtitle track matches language %q\n", subtitleLang)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&trackID, "track-id", 0, "Stream index to mark as default")
	cmd.Flags().StringVar(&audioLang, "audio", "", "Audio language to mark as default (e.g. jpn)")
	cmd.Flags().StringVar(&subtitleLang, "subtitle", "", "Subtitle language to mark as default (e.g. eng)")

	return cmd
}
