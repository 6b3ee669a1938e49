package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for demoreel state.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Scaffold contains configuration for the SQL scaffold generator.
type Scaffold struct {
	Root string `toml:"root"`
}

// Tools names the external binaries demoreel shells out to. Empty values
// fall back to platform defaults.
type Tools struct {
	FFmpeg        string `toml:"ffmpeg"`
	Speech        string `toml:"speech"`
	DockerCompose string `toml:"docker_compose"`
	Curl          string `toml:"curl"`
}

// Recorder contains configuration for the frame-capture recorder.
type Recorder struct {
	OutputPath    string `toml:"output_path"`
	FrameRate     int    `toml:"frame_rate"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	SpeechEnabled bool   `toml:"speech_enabled"`
	// SpeechRate is the narration speed in words per minute.
	SpeechRate int    `toml:"speech_rate"`
	ComposeDir string `toml:"compose_dir"`
	HealthURL  string `toml:"health_url"`
	// Display is the capture source passed to the screen grabber
	// (X11 display on Linux, screen index on macOS, ignored on Windows).
	Display               string `toml:"display"`
	ComposeTimeoutSeconds int    `toml:"compose_timeout_seconds"`
	HealthTimeoutSeconds  int    `toml:"health_timeout_seconds"`
	// ReadinessTimeoutSeconds enables polling the health URL after the
	// compose action. Zero keeps the fixed-duration segments only.
	ReadinessTimeoutSeconds int `toml:"readiness_timeout_seconds"`
}

// Encoder contains configuration for the external-encoder recorder.
type Encoder struct {
	OutputPath   string `toml:"output_path"`
	FrameRate    int    `toml:"frame_rate"`
	ScreenDevice string `toml:"screen_device"`
	AudioDevice  string `toml:"audio_device"`
	GraceSeconds int    `toml:"grace_seconds"`
}

// Preflight toggles optional readiness checks shown by `demoreel status`.
type Preflight struct {
	CheckHealth bool `toml:"check_health"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for demoreel.
//
// Configuration sections by subsystem:
//   - Paths: state (ledger, lock) and log directories
//   - Scaffold: target root for generated SQL files
//   - Tools: external binary overrides
//   - Recorder: frame-capture recorder output, timing, and demo targets
//   - Encoder: external-encoder recorder output and capture devices
//   - Preflight: optional readiness checks
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Scaffold  Scaffold  `toml:"scaffold"`
	Tools     Tools     `toml:"tools"`
	Recorder  Recorder  `toml:"recorder"`
	Encoder   Encoder   `toml:"encoder"`
	Preflight Preflight `toml:"preflight"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/demoreel/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("demoreel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories. The video output
// directories are created by the recorders right before they open a file.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LedgerPath returns the SQLite run history location.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.StateDir, "ledger.db")
}

// LockPath returns the recording session lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "recorder.lock")
}

// SpeechBinary returns the text-to-speech executable for the running platform.
func (c *Config) SpeechBinary() string {
	if v := strings.TrimSpace(c.Tools.Speech); v != "" {
		return v
	}
	return DefaultSpeechBinary(runtime.GOOS)
}

// DefaultSpeechBinary maps a GOOS value to its stock speech engine.
func DefaultSpeechBinary(goos string) string {
	switch goos {
	case "darwin":
		return "say"
	case "windows":
		return "powershell"
	default:
		return "espeak"
	}
}

// DockerComposeBinary returns the docker-compose executable.
func (c *Config) DockerComposeBinary() string {
	if v := strings.TrimSpace(c.Tools.DockerCompose); v != "" {
		return v
	}
	return "docker-compose"
}

// CurlBinary returns the curl executable.
func (c *Config) CurlBinary() string {
	if v := strings.TrimSpace(c.Tools.Curl); v != "" {
		return v
	}
	return "curl"
}

// FrameInterval returns the pause between two captured frames.
func (r Recorder) FrameInterval() time.Duration {
	if r.FrameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(r.FrameRate)
}

// ComposeTimeout returns the docker-compose action timeout.
func (r Recorder) ComposeTimeout() time.Duration {
	return time.Duration(r.ComposeTimeoutSeconds) * time.Second
}

// HealthTimeout returns the health check action timeout.
func (r Recorder) HealthTimeout() time.Duration {
	return time.Duration(r.HealthTimeoutSeconds) * time.Second
}

// ReadinessTimeout returns how long to poll the health URL, or zero when disabled.
func (r Recorder) ReadinessTimeout() time.Duration {
	return time.Duration(r.ReadinessTimeoutSeconds) * time.Second
}

// Grace returns how long the encoder gets to flush after being asked to stop.
func (e Encoder) Grace() time.Duration {
	return time.Duration(e.GraceSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
