package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"demoreel/internal/checklist"
	"demoreel/internal/config"
	"demoreel/internal/ledger"
	"demoreel/internal/preflight"
	"demoreel/internal/recorder"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	var yes bool
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the narrated demo walkthrough",
		Long: "Play the six-segment demo script: narrate each segment, start the Docker\n" +
			"stack, call the health endpoint, and capture the screen into a video.\n" +
			"Press Ctrl+C to stop early; the partial recording is kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			out := cmd.OutOrStdout()

			if err := requireRecorderDeps(cmd, cfg); err != nil {
				return err
			}
			if err := checklist.Render(out, checklist.Select(checklist.BeforeRecording, checklist.RecordingPlan)); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if !yes {
				if err := waitForEnter(cmd, "Press ENTER to start recording (Ctrl+C stops early)..."); err != nil {
					return err
				}
			}

			tracker := ctx.beginRun(cmd.Context(), ledger.KindRecord)
			opts := []recorder.Option{
				recorder.WithLogger(logger),
				recorder.WithProgress(recorder.NewProgress(cmd.ErrOrStderr(), logger)),
				recorder.WithObserver(func(o ledger.Outcome) {
					tracker.step(cmd.Context(), o)
				}),
			}
			if strings.TrimSpace(outputFlag) != "" {
				output, err := config.ExpandPath(strings.TrimSpace(outputFlag))
				if err != nil {
					tracker.finish(cmd.Context(), err, "")
					return fmt.Errorf("resolve output path: %w", err)
				}
				opts = append(opts, recorder.WithOutput(output))
			}

			rec, err := recorder.New(cfg, opts...)
			if err != nil {
				tracker.finish(cmd.Context(), err, "")
				return err
			}
			report, runErr := rec.Run(cmd.Context())
			tracker.finish(cmd.Context(), runErr, recordDetail(report))

			if report.OutputPath != "" {
				fmt.Fprintln(out)
				fmt.Fprint(out, renderRecordSummary(report))
			}
			if runErr != nil {
				if errors.Is(runErr, context.Canceled) {
					fmt.Fprintln(out, "Recording stopped early; the partial video was kept.")
					return runErr
				}
				return fmt.Errorf("record: %w", runErr)
			}

			fmt.Fprintln(out)
			return checklist.Render(out, checklist.Select(checklist.AfterRecording))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Start without waiting for ENTER")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Video path (defaults to recorder.output_path)")
	return cmd
}

// requireRecorderDeps fails when ffmpeg is missing and warns about the
// optional tools whose steps will be recorded as failures.
func requireRecorderDeps(cmd *cobra.Command, cfg *config.Config) error {
	statuses := preflight.CheckSystemDeps(cfg)
	var missing []string
	for _, s := range statuses {
		switch {
		case s.Blocking():
			missing = append(missing, fmt.Sprintf("%s (%s)", s.Name, s.Detail))
		case !s.Available:
			fmt.Fprintf(cmd.ErrOrStderr(), "warn: %s unavailable (%s); those steps will be skipped\n", s.Name, s.Detail)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required dependencies: %s", strings.Join(missing, ", "))
	}
	return nil
}

func recordDetail(report recorder.Report) string {
	if report.OutputPath == "" {
		return ""
	}
	return fmt.Sprintf("%s: %d frames, %d failed steps", report.OutputPath, report.Frames, len(report.Failures()))
}

func renderRecordSummary(report recorder.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recording saved to %s\n", report.OutputPath)
	fmt.Fprintf(&b, "  Frames:   %d\n", report.Frames)
	fmt.Fprintf(&b, "  Elapsed:  %s\n", report.Elapsed.Round(time.Second))
	fmt.Fprintf(&b, "  Size:     %s\n", humanize.Bytes(uint64(max(report.SizeBytes, 0))))

	failures := report.Failures()
	if len(failures) == 0 {
		b.WriteString("  Steps:    all succeeded\n")
		return b.String()
	}
	fmt.Fprintf(&b, "  Steps:    %d failed\n", len(failures))
	for _, f := range failures {
		label := f.Name
		if f.Segment > 0 {
			label = fmt.Sprintf("segment %d %s", f.Segment, f.Name)
		}
		fmt.Fprintf(&b, "    - %s: %s\n", label, f.Detail)
	}
	return b.String()
}
