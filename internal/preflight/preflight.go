package preflight

import (
	"context"
	"path/filepath"

	"demoreel/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// The health endpoint is only probed when preflight.check_health is set,
// since the demo stack is usually down until the recording starts it.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Output directory", filepath.Dir(cfg.Recorder.OutputPath)))

	if cfg.Recorder.ComposeDir != "" {
		results = append(results, CheckComposeDirectory(cfg.Recorder.ComposeDir))
	}

	if cfg.Preflight.CheckHealth {
		results = append(results, CheckHealthEndpoint(ctx, cfg.Recorder.HealthURL))
	}

	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
