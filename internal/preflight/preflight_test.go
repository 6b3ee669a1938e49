package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"demoreel/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckComposeDirectory(t *testing.T) {
	dir := t.TempDir()
	if result := CheckComposeDirectory(dir); result.Passed {
		t.Fatal("expected failure without a compose file")
	}
	if err := os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte("services: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckComposeDirectory(dir); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckHealthEndpoint_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := CheckHealthEndpoint(context.Background(), srv.URL+"/api/health")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckHealthEndpoint_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result := CheckHealthEndpoint(context.Background(), srv.URL)
	if result.Passed {
		t.Fatal("expected failure for 503")
	}
}

func TestCheckHealthEndpoint_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := CheckHealthEndpoint(context.Background(), url)
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
}

func TestCheckHealthEndpoint_MissingURL(t *testing.T) {
	if result := CheckHealthEndpoint(context.Background(), " "); result.Passed {
		t.Fatal("expected failure for missing URL")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_SkipsHealthByDefault(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = base
	cfg.Recorder.OutputPath = filepath.Join(base, "demo.mp4")
	cfg.Recorder.ComposeDir = ""
	cfg.Preflight.CheckHealth = false

	results := RunAll(context.Background(), &cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
}

func TestRunAll_IncludesHealthWhenEnabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = base
	cfg.Recorder.OutputPath = filepath.Join(base, "demo.mp4")
	cfg.Recorder.ComposeDir = filepath.Join(base, "missing")
	cfg.Recorder.HealthURL = srv.URL
	cfg.Preflight.CheckHealth = true

	results := RunAll(context.Background(), &cfg)
	names := map[string]Result{}
	for _, r := range results {
		names[r.Name] = r
	}
	if r, ok := names["Health endpoint"]; !ok || !r.Passed {
		t.Fatalf("expected passing health check, got %+v", results)
	}
	if r, ok := names["Compose project"]; !ok || r.Passed {
		t.Fatalf("expected failing compose check, got %+v", results)
	}
	if AllPassed(results) {
		t.Fatal("AllPassed should be false with a failing check")
	}
}

func TestRecorderRequirementsOnlyFFmpegRequired(t *testing.T) {
	cfg := config.Default()
	for _, req := range RecorderRequirements(&cfg) {
		if req.Name == "FFmpeg" && req.Optional {
			t.Fatal("ffmpeg must be required")
		}
		if req.Name != "FFmpeg" && !req.Optional {
			t.Fatalf("%s should be optional", req.Name)
		}
	}
}
