package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"streampick/internal/engine"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var quality string
	var bitrate int
	var videoCodec string
	var audioCodec string
	var videoOnly bool
	var audioOnly bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "get <video-id>",
		Short: "Select video and audio streams with one provider round trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if videoOnly && audioOnly {
				return fmt.Errorf("--video-only and --audio-only are mutually exclusive")
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc streamService) error {
				result, err := svc.GetUnifiedStreams(runCtx, engine.UnifiedRequest{
					VideoID:      args[0],
					VideoQuality: quality,
					AudioBitrate: bitrate,
					VideoCodec:   videoCodec,
					AudioCodec:   audioCodec,
					IncludeVideo: !audioOnly,
					IncludeAudio: !videoOnly,
				})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, result)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Duration: %s\n", formatDuration(result.Duration))
				if !audioOnly {
					fmt.Fprintln(out, renderBranch("Video", result.Video))
				}
				if !videoOnly {
					fmt.Fprintln(out, renderBranch("Audio", result.Audio))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Target video quality (e.g. 1080p, 4k, hd)")
	cmd.Flags().IntVarP(&bitrate, "bitrate", "b", 0, "Target audio bitrate in kbps")
	cmd.Flags().StringVar(&videoCodec, "video-codec", "", "Preferred video codec")
	cmd.Flags().StringVar(&audioCodec, "audio-codec", "", "Preferred audio codec")
	cmd.Flags().BoolVar(&videoOnly, "video-only", false, "Skip the audio branch")
	cmd.Flags().BoolVar(&audioOnly, "audio-only", false, "Skip the video branch")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
