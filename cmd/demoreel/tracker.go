package main

import (
	"context"
	"errors"
	"log/slog"

	"demoreel/internal/ledger"
	"demoreel/internal/logging"
	"demoreel/internal/textutil"
)

const trackerDetailLimit = 300

// runTracker mirrors one command invocation into the ledger. History is
// best effort: when the ledger cannot be opened or written every method
// logs and carries on.
type runTracker struct {
	store  *ledger.Store
	run    ledger.Run
	logger *slog.Logger
}

func (c *commandContext) beginRun(ctx context.Context, kind ledger.Kind) *runTracker {
	logger := logging.NewComponentLogger(c.ensureLogger(), "ledger")
	tracker := &runTracker{logger: logger}

	store, err := c.openLedger()
	if err != nil {
		logging.WarnWithHint(logger, "run history unavailable", "ledger_open_failed",
			"check paths.state_dir permissions", logging.Error(err))
		return tracker
	}
	run, err := store.Begin(context.WithoutCancel(ctx), kind)
	if err != nil {
		logger.Warn("failed to record run start", logging.Error(err))
		_ = store.Close()
		return tracker
	}
	tracker.store = store
	tracker.run = run
	return tracker
}

func (t *runTracker) step(ctx context.Context, outcome ledger.Outcome) {
	if t.store == nil {
		return
	}
	if _, err := t.store.AddStep(context.WithoutCancel(ctx), t.run.ID, outcome); err != nil {
		t.logger.Warn("failed to record step",
			logging.String("step", outcome.Name),
			logging.Error(err),
		)
	}
}

// finish closes the run with a status derived from err and releases the
// store.
func (t *runTracker) finish(ctx context.Context, err error, detail string) {
	if t.store == nil {
		return
	}
	defer func() {
		if closeErr := t.store.Close(); closeErr != nil {
			t.logger.Warn("failed to close ledger", logging.Error(closeErr))
		}
	}()

	status := runStatus(err)
	if err != nil && detail == "" {
		detail = err.Error()
	}
	detail = textutil.Summarize(detail, trackerDetailLimit)
	if finishErr := t.store.Finish(context.WithoutCancel(ctx), t.run.ID, status, detail); finishErr != nil {
		t.logger.Warn("failed to record run result", logging.Error(finishErr))
	}
}

func runStatus(err error) ledger.Status {
	switch {
	case err == nil:
		return ledger.StatusSucceeded
	case errors.Is(err, context.Canceled):
		return ledger.StatusCanceled
	default:
		return ledger.StatusFailed
	}
}
