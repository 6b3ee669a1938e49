package recorder

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"demoreel/internal/testsupport"
)

func TestDefaultScriptTiming(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	script := DefaultScript(cfg)

	var got []OutlineEntry
	for _, seg := range script {
		got = append(got, OutlineEntry{Number: seg.Number, Title: seg.Title, Duration: seg.Duration()})
	}
	want := []OutlineEntry{
		{Number: 1, Title: "Introduction", Duration: 30 * time.Second},
		{Number: 2, Title: "Architecture & Docker Setup", Duration: 60 * time.Second},
		{Number: 3, Title: "Docker Startup", Duration: 90 * time.Second},
		{Number: 4, Title: "Health Check", Duration: 60 * time.Second},
		{Number: 5, Title: "API Testing", Duration: 90 * time.Second},
		{Number: 6, Title: "Conclusion", Duration: 30 * time.Second},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, Outline()); diff != "" {
		t.Fatalf("Outline mismatch (-want +got):\n%s", diff)
	}
	if script.Duration() != 6*time.Minute {
		t.Fatalf("expected 6 minute script, got %s", script.Duration())
	}
	if frames := script.Frames(30); frames != 10800 {
		t.Fatalf("expected 10800 frames at 30fps, got %d", frames)
	}
}

func TestDefaultScriptNarrationAndActions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	script := DefaultScript(cfg)

	var narrations []string
	var actions []Action
	for _, seg := range script {
		for _, step := range seg.Steps {
			if step.Clip != nil && step.Clip.Narration != "" {
				narrations = append(narrations, step.Clip.Narration)
			}
			if step.Action != nil {
				actions = append(actions, *step.Action)
			}
		}
	}
	if len(narrations) != 9 {
		t.Fatalf("expected 9 narrations, got %d", len(narrations))
	}
	if !strings.HasPrefix(narrations[0], "Hello, I'm Pavani.") || !strings.HasSuffix(narrations[8], "Thank you for watching!") {
		t.Fatalf("unexpected first/last narration: %q / %q", narrations[0], narrations[8])
	}

	want := []Action{
		{
			Name:      ActionCompose,
			Argv:      []string{"docker-compose", "up", "-d"},
			Dir:       cfg.Recorder.ComposeDir,
			Timeout:   60 * time.Second,
			WaitReady: true,
		},
		{
			Name:    ActionHealth,
			Argv:    []string{"curl", cfg.Recorder.HealthURL},
			Timeout: 10 * time.Second,
		},
	}
	if diff := cmp.Diff(want, actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestFramesFor(t *testing.T) {
	tests := []struct {
		d    time.Duration
		fps  int
		want int
	}{
		{d: 30 * time.Second, fps: 30, want: 900},
		{d: 70 * time.Second, fps: 30, want: 2100},
		{d: 1500 * time.Millisecond, fps: 25, want: 37},
		{d: time.Second, fps: 0, want: 0},
		{d: 0, fps: 30, want: 0},
	}
	for _, tc := range tests {
		if got := FramesFor(tc.d, tc.fps); got != tc.want {
			t.Errorf("FramesFor(%s, %d) = %d, want %d", tc.d, tc.fps, got, tc.want)
		}
	}
}
