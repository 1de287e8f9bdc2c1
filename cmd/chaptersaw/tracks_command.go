package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"chaptersaw/internal/media"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks <file>...",
		Short: "List the streams of video files",
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
				trackList, err := b.Tracks(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n", path)
				rows := make([][]string, 0, len(trackList))
				for _, track := range trackList {
					rows = append(rows, []string{
						strconv.Itoa(track.ID),
						string(track.Type),
						track.Codec,
						track.Language,
						track.Name,
						trackDetail(track),
						yesNo(track.Default),
						yesNo(track.Forced),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Type", "Codec", "Lang", "Name", "Detail", "Default", "Forced"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}
	return cmd
}

func trackDetail(track media.Track) string {
	switch track.Type {
	case media.TrackVideo:
		if track.Width > 0 && track.Height > 0 {
			return fmt.Sprintf("%dx%d", track.Width, track.Height)
		}
	case media.TrackAudio:
		if track.Channels > 0 {
			return fmt.Sprintf("%dch %dHz", track.Channels, track.SampleRate)
		}
	}
	return ""
}
