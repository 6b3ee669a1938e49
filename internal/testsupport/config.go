package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"demoreel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Every path points inside the test's temp dir and the health URL targets a
// closed port, so nothing leaks onto the real machine.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Scaffold.Root = filepath.Join(base, "project")
	cfgVal.Recorder.OutputPath = filepath.Join(base, "videos", "saas_demo.mp4")
	cfgVal.Recorder.ComposeDir = filepath.Join(base, "compose")
	cfgVal.Recorder.HealthURL = "http://127.0.0.1:1/api/health"
	cfgVal.Recorder.Display = ":99"
	cfgVal.Encoder.OutputPath = filepath.Join(base, "videos", "saas_demo_encoder.mp4")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHealthURL overrides the demo API health URL.
func WithHealthURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recorder.HealthURL = url
	}
}

// WithSpeechDisabled turns narration playback off.
func WithSpeechDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recorder.SpeechEnabled = false
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default demoreel external
// binaries are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "espeak", "docker-compose", "curl"}
		}
		scripts := make(map[string]string, len(names))
		for _, name := range names {
			scripts[name] = "#!/bin/sh\nexit 0\n"
		}
		StubScripts(b.t, filepath.Join(b.baseDir, "bin"), scripts)
	}
}

// StubScripts writes each script body as an executable named by its key into
// dir and prepends dir to PATH for the remainder of the test.
func StubScripts(t testing.TB, dir string, scripts map[string]string) {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	for name, body := range scripts {
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, []byte(body), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
