package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFmpegPath picks the ffmpeg executable both recorders run.
//
// Lookup order: the configured command when it resolves, an ffmpeg binary
// sitting next to the demoreel executable (portable bundles ship it that
// way), then "ffmpeg" from PATH. When nothing resolves the configured value
// (or "ffmpeg") is returned unchanged so the caller can report it missing.
func ResolveFFmpegPath(configured string) string {
	configured = strings.TrimSpace(configured)
	if configured != "" {
		if resolved, err := exec.LookPath(configured); err == nil {
			return resolved
		}
		return configured
	}

	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), ffmpegName())
		if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
			return candidate
		}
	}

	if resolved, err := exec.LookPath("ffmpeg"); err == nil {
		return resolved
	}
	return "ffmpeg"
}

func ffmpegName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
