package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status <video-id>",
		Short: "Check whether a video is available for playback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc streamService) error {
				status := svc.CheckStatus(runCtx, args[0])
				if jsonOut {
					return writeJSON(cmd, status)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderStatusLine(args[0], status, colorize))
				if status.Error != "" {
					fmt.Fprintf(out, "  %s\n", status.Error)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
