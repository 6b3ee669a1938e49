package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"demoreel/internal/config"
	"demoreel/internal/encoder"
	"demoreel/internal/testsupport"
)

func TestEncodeMissingBinary(t *testing.T) {
	env := setupCLITestEnv(t, func(cfg *config.Config) {
		cfg.Tools.FFmpeg = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	})

	out, _, err := runCLI(t, []string{"encode", "--yes"}, env.configPath)
	if !errors.Is(err, encoder.ErrEncoderMissing) {
		t.Fatalf("expected ErrEncoderMissing, got %v", err)
	}
	if strings.Contains(out, "Recording to") {
		t.Fatalf("encoder should not start, got:\n%s", out)
	}
	if _, statErr := os.Stat(env.cfg.Encoder.OutputPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, stat err=%v", statErr)
	}
}

func TestEncodeStopsOnInterrupt(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.StubScripts(t, filepath.Join(env.baseDir, "encoder-bin"), map[string]string{
		"ffmpeg": "#!/bin/sh\nfor a; do out=$a; done\nread line\nprintf 'video' > \"$out\"\nexit 0\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		time.Sleep(300 * time.Millisecond)
		cancel()
	}()

	out, _, err := runCLIWithInput(t, ctx, []string{"encode", "--yes"}, env.configPath, strings.NewReader(""))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	requireContains(t, out, "Recording to "+env.cfg.Encoder.OutputPath)
	requireContains(t, out, "Recording saved to")
	requireContains(t, out, "5 B")
	requireContains(t, out, "After Recording:")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "encode")
	requireContains(t, out, "succeeded")
}
