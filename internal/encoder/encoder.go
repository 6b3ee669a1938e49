package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"demoreel/internal/config"
	"demoreel/internal/deps"
	"demoreel/internal/logging"
	"demoreel/internal/textutil"
)

// ErrEncoderMissing is returned by Run when the encoder binary cannot be found.
var ErrEncoderMissing = errors.New("encoder binary not found")

// ErrKilled reports that the encoder ignored the stop request and was killed.
var ErrKilled = errors.New("encoder did not stop within grace period")

// Check reports whether the encoder binary is reachable.
func Check(cfg *config.Config) deps.Status {
	return deps.CheckBinary(deps.Requirement{
		Name:        "FFmpeg",
		Command:     deps.ResolveFFmpegPath(cfg.Tools.FFmpeg),
		Description: "Captures and encodes the screen recording",
	})
}

// Args returns the platform-specific ffmpeg argument list.
func Args(platform string, cfg config.Encoder) []string {
	fps := strconv.Itoa(cfg.FrameRate)
	args := []string{"-hide_banner", "-loglevel", "warning", "-y"}

	switch platform {
	case "darwin":
		screen := orDefault(cfg.ScreenDevice, "1")
		audio := orDefault(cfg.AudioDevice, "0")
		args = append(args,
			"-f", "avfoundation", "-framerate", fps, "-capture_cursor", "1",
			"-i", screen+":"+audio,
		)
	case "windows":
		audio := orDefault(cfg.AudioDevice, "Microphone")
		args = append(args,
			"-f", "gdigrab", "-framerate", fps, "-i", orDefault(cfg.ScreenDevice, "desktop"),
			"-f", "dshow", "-i", "audio="+audio,
		)
	default:
		screen := orDefault(cfg.ScreenDevice, orDefault(os.Getenv("DISPLAY"), ":0.0"))
		audio := orDefault(cfg.AudioDevice, "default")
		args = append(args,
			"-f", "x11grab", "-framerate", fps, "-i", screen,
			"-f", "pulse", "-i", audio,
		)
	}

	return append(args,
		"-c:v", "libx264", "-preset", "ultrafast", "-pix_fmt", "yuv420p",
		"-c:a", "aac", "-b:a", "128k",
		cfg.OutputPath,
	)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Encoder supervises one external encoder process.
type Encoder struct {
	cfg      config.Encoder
	binary   string
	platform string
	stdout   io.Writer
	logger   *slog.Logger
}

// Option customizes an Encoder.
type Option func(*Encoder)

// WithPlatform overrides runtime.GOOS for argument selection.
func WithPlatform(goos string) Option {
	return func(e *Encoder) { e.platform = goos }
}

// WithOutput sends the encoder's stdout and stderr to w.
func WithOutput(w io.Writer) Option {
	return func(e *Encoder) { e.stdout = w }
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) { e.logger = logger }
}

// New builds an Encoder from cfg.
func New(cfg *config.Config, opts ...Option) *Encoder {
	e := &Encoder{
		cfg:      cfg.Encoder,
		binary:   deps.ResolveFFmpegPath(cfg.Tools.FFmpeg),
		platform: runtime.GOOS,
		stdout:   io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(e.logger, "encoder")
	return e
}

// OutputPath returns where the encoder writes the recording.
func (e *Encoder) OutputPath() string {
	return e.cfg.OutputPath
}

// Run spawns the encoder and blocks until it exits or ctx is cancelled. On
// cancellation it asks ffmpeg to stop by writing "q" to stdin and kills the
// process if it has not exited within the grace period. An operator stop is
// the normal way a recording ends, so it returns nil.
func (e *Encoder) Run(ctx context.Context) error {
	status := deps.CheckBinary(deps.Requirement{Name: "FFmpeg", Command: e.binary})
	if !status.Available {
		return fmt.Errorf("%w: %s", ErrEncoderMissing, status.Detail)
	}

	if err := os.MkdirAll(filepath.Dir(e.cfg.OutputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := Args(e.platform, e.cfg)
	cmd := exec.Command(status.Command, args...) //nolint:gosec
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stderr := textutil.NewLineTail(8)
	cmd.Stdout = e.stdout
	cmd.Stderr = io.MultiWriter(e.stdout, stderr)
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start encoder: %w", err)
	}
	e.logger.Info("encoder started",
		logging.String("binary", status.Command),
		logging.String("output", e.cfg.OutputPath),
		logging.Int("pid", cmd.Process.Pid),
	)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		_ = stdin.Close()
		if err != nil {
			return fmt.Errorf("encoder exited: %w: %s", err, stderr.String())
		}
		e.logger.Info("encoder exited")
		return nil
	case <-ctx.Done():
	}

	e.logger.Info("stopping encoder", logging.Duration("grace", e.cfg.Grace()))
	if _, err := io.WriteString(stdin, "q\n"); err != nil {
		e.logger.Debug("stop request not delivered", logging.Error(err))
	}
	_ = stdin.Close()

	timer := time.NewTimer(e.cfg.Grace())
	defer timer.Stop()
	select {
	case <-done:
		e.logger.Info("encoder stopped", logging.String("output", e.cfg.OutputPath))
		return nil
	case <-timer.C:
		_ = cmd.Process.Kill()
		<-done
		logging.WarnWithHint(e.logger, "encoder killed", "encoder_killed",
			"the recording may be truncated; raise encoder.grace_seconds")
		return ErrKilled
	}
}
