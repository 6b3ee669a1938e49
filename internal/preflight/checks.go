package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"demoreel/internal/config"
	"demoreel/internal/deps"
)

const healthCheckTimeout = 5 * time.Second

// composeFiles are the names docker-compose looks for in a project directory.
var composeFiles = []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckComposeDirectory verifies the demo project directory holds a compose file.
func CheckComposeDirectory(dir string) Result {
	const name = "Compose project"

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", dir)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", dir, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", dir)}
	}
	for _, file := range composeFiles {
		if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", dir, file)}
		}
	}
	return Result{Name: name, Detail: fmt.Sprintf("%s (error: no compose file)", dir)}
}

// CheckHealthEndpoint performs a single GET against the demo API health URL.
func CheckHealthEndpoint(ctx context.Context, url string) Result {
	const name = "Health endpoint"

	url = strings.TrimSpace(url)
	if url == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}

	client := &http.Client{Timeout: healthCheckTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeHTTPError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d)", url, resp.StatusCode)}
	}
	return Result{Name: name, Detail: fmt.Sprintf("%s (status %d)", url, resp.StatusCode)}
}

// RecorderRequirements lists the external binaries the recorders shell out to.
// Only ffmpeg is required; every other tool degrades to a logged failure.
func RecorderRequirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     deps.ResolveFFmpegPath(cfg.Tools.FFmpeg),
			Description: "Required for screen capture and encoding",
		},
		{
			Name:        "Speech engine",
			Command:     cfg.SpeechBinary(),
			Description: "Narration playback",
			Optional:    true,
		},
		{
			Name:        "docker-compose",
			Command:     cfg.DockerComposeBinary(),
			Description: "Starts the demo stack during recording",
			Optional:    true,
		},
		{
			Name:        "curl",
			Command:     cfg.CurlBinary(),
			Description: "Calls the health endpoint during recording",
			Optional:    true,
		},
	}
}

// CheckSystemDeps evaluates RecorderRequirements for the given config.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(RecorderRequirements(cfg))
}

func summarizeHTTPError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (API unreachable)"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Sprintf("unreachable (%v)", opErr.Err)
	}
	return err.Error()
}
