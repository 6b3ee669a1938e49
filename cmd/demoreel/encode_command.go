package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"demoreel/internal/checklist"
	"demoreel/internal/encoder"
	"demoreel/internal/ledger"
)

func newEncodeCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Record the demo with ffmpeg capturing screen and microphone",
		Long: "Run ffmpeg as a single capture-and-encode process until Ctrl+C. The\n" +
			"operator narrates live; ffmpeg receives a clean stop request on exit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			status := encoder.Check(cfg)
			if !status.Available {
				return fmt.Errorf("%w: %s; install ffmpeg or set tools.ffmpeg", encoder.ErrEncoderMissing, status.Detail)
			}

			if err := checklist.Render(out, checklist.Select(checklist.BeforeRecording, checklist.RecordingPlan)); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if !yes {
				if err := waitForEnter(cmd, "Press ENTER to start recording..."); err != nil {
					return err
				}
			}

			enc := encoder.New(cfg,
				encoder.WithLogger(ctx.ensureLogger()),
				encoder.WithOutput(cmd.ErrOrStderr()),
			)
			tracker := ctx.beginRun(cmd.Context(), ledger.KindEncode)
			fmt.Fprintf(out, "Recording to %s. Press Ctrl+C to stop.\n", enc.OutputPath())

			runErr := enc.Run(cmd.Context())
			tracker.finish(cmd.Context(), runErr, enc.OutputPath())
			if runErr != nil {
				return fmt.Errorf("encode: %w", runErr)
			}

			if info, err := os.Stat(enc.OutputPath()); err == nil {
				fmt.Fprintf(out, "Recording saved to %s (%s)\n", enc.OutputPath(), humanize.Bytes(uint64(info.Size())))
			} else {
				fmt.Fprintf(out, "Encoder exited but %s was not written\n", enc.OutputPath())
			}
			fmt.Fprintln(out)
			return checklist.Render(out, checklist.Select(checklist.AfterRecording))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Start without waiting for ENTER")
	return cmd
}
