package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"demoreel/internal/config"
	"demoreel/internal/ledger"
	"demoreel/internal/preflight"
	"demoreel/internal/recorder"
	"demoreel/internal/textutil"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show dependency, readiness, and recorder status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(preflight.CheckSystemDeps(cfg), colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Preflight", colorize)...)
			lines = append(lines, preflightLines(preflight.RunAll(cmd.Context(), cfg), colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Recorder", colorize)...)
			lines = append(lines, recorderLines(cfg, colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("History", colorize)...)
			lines = append(lines, lastRunLine(cmd, ctx, colorize))

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func recorderLines(cfg *config.Config, colorize bool) []string {
	rc := cfg.Recorder
	script := recorder.DefaultScript(cfg)
	lines := []string{
		renderStatusLine("Output", statusInfo, rc.OutputPath, colorize),
		renderStatusLine("Script", statusInfo, fmt.Sprintf("%d segments, %s at %d fps (%d frames)",
			len(script), script.Duration(), rc.FrameRate, script.Frames(rc.FrameRate)), colorize),
		renderStatusLine("Narration", statusInfo, fmt.Sprintf("%s (%d wpm)",
			textutil.Ternary(rc.SpeechEnabled, "enabled", "disabled"), rc.SpeechRate), colorize),
	}
	if rc.ReadinessTimeoutSeconds > 0 {
		lines = append(lines, renderStatusLine("Readiness wait", statusInfo, rc.ReadinessTimeout().String(), colorize))
	} else {
		lines = append(lines, renderStatusLine("Readiness wait", statusInfo, "disabled", colorize))
	}
	lines = append(lines, renderStatusLine("Encoder output", statusInfo, cfg.Encoder.OutputPath, colorize))

	lock := recorder.NewSessionLock(cfg.LockPath())
	switch err := lock.Acquire(); {
	case err == nil:
		_ = lock.Release()
		lines = append(lines, renderStatusLine("Session", statusOK, "idle", colorize))
	case errors.Is(err, recorder.ErrSessionLocked):
		lines = append(lines, renderStatusLine("Session", statusWarn, "recording in progress", colorize))
	default:
		lines = append(lines, renderStatusLine("Session", statusError, err.Error(), colorize))
	}
	return lines
}

func lastRunLine(cmd *cobra.Command, ctx *commandContext, colorize bool) string {
	store, err := ctx.openLedger()
	if err != nil {
		return renderStatusLine("Last run", statusWarn, err.Error(), colorize)
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), 1)
	if err != nil {
		return renderStatusLine("Last run", statusWarn, err.Error(), colorize)
	}
	if len(runs) == 0 {
		return renderStatusLine("Last run", statusInfo, "none recorded", colorize)
	}
	run := runs[0]
	kind := statusInfo
	switch run.Status {
	case ledger.StatusSucceeded:
		kind = statusOK
	case ledger.StatusFailed:
		kind = statusError
	case ledger.StatusCanceled:
		kind = statusWarn
	}
	message := fmt.Sprintf("%s %s at %s", run.Kind, run.Status, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	return renderStatusLine("Last run", kind, message, colorize)
}
