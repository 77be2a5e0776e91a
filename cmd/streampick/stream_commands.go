package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"streampick/internal/media"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	var quality string
	var codec string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "video <video-id>",
		Short: "Select the best video-only stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc streamService) error {
				streams, err := svc.GetVideoStreams(runCtx, args[0], quality, codec)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, streams)
				}
				printStreams(cmd, streams)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Target quality (e.g. 1080p, 4k, hd)")
	cmd.Flags().StringVar(&codec, "codec", "", "Preferred video codec (e.g. h264, vp9, av1)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newAudioCommand(ctx *commandContext) *cobra.Command {
	var bitrate int
	var codec string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "audio <video-id>",
		Short: "Select the best audio-only stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc streamService) error {
				streams, err := svc.GetAudioStreams(runCtx, args[0], bitrate, codec)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, streams)
				}
				printStreams(cmd, streams)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&bitrate, "bitrate", "b", 0, "Target audio bitrate in kbps")
	cmd.Flags().StringVar(&codec, "codec", "", "Preferred audio codec (e.g. aac, opus)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}

func printStreams(cmd *cobra.Command, streams []media.StreamInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderStreamTable(streams))
	for _, s := range streams {
		fmt.Fprintf(out, "%s: %s\n", s.FormatID, s.URL)
	}
}
