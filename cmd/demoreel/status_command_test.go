package main

import (
	"testing"

	"demoreel/internal/recorder"
)

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{
		"== Dependencies ==",
		"[OK] ready to record",
		"FFmpeg:",
		"== Preflight ==",
		"State directory:",
		"== Recorder ==",
		"6 segments, 6m0s at 30 fps (10800 frames)",
		"[OK] idle",
		"none recorded",
	} {
		requireContains(t, out, want)
	}
}

func TestStatusCommandReportsActiveSession(t *testing.T) {
	env := setupCLITestEnv(t)
	lock := recorder.NewSessionLock(env.cfg.LockPath())
	if err := lock.Acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer lock.Release()

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "recording in progress")
}
