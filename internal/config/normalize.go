package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeScaffold(); err != nil {
		return err
	}
	c.normalizeTools()
	if err := c.normalizeRecorder(); err != nil {
		return err
	}
	if err := c.normalizeEncoder(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScaffold() error {
	var err error
	if strings.TrimSpace(c.Scaffold.Root) == "" {
		c.Scaffold.Root = defaultScaffoldRoot
	}
	if c.Scaffold.Root, err = expandPath(c.Scaffold.Root); err != nil {
		return fmt.Errorf("scaffold.root: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.Speech = strings.TrimSpace(c.Tools.Speech)
	c.Tools.DockerCompose = strings.TrimSpace(c.Tools.DockerCompose)
	c.Tools.Curl = strings.TrimSpace(c.Tools.Curl)
}

func (c *Config) normalizeRecorder() error {
	var err error
	if strings.TrimSpace(c.Recorder.OutputPath) == "" {
		c.Recorder.OutputPath = defaultOutputPath
	}
	if c.Recorder.OutputPath, err = expandPath(c.Recorder.OutputPath); err != nil {
		return fmt.Errorf("recorder.output_path: %w", err)
	}
	if strings.TrimSpace(c.Recorder.ComposeDir) == "" {
		c.Recorder.ComposeDir = defaultComposeDir
	}
	if c.Recorder.ComposeDir, err = expandPath(c.Recorder.ComposeDir); err != nil {
		return fmt.Errorf("recorder.compose_dir: %w", err)
	}
	if value, ok := os.LookupEnv("DEMOREEL_HEALTH_URL"); ok && strings.TrimSpace(value) != "" {
		c.Recorder.HealthURL = value
	}
	c.Recorder.HealthURL = strings.TrimSpace(c.Recorder.HealthURL)
	if c.Recorder.HealthURL == "" {
		c.Recorder.HealthURL = defaultHealthURL
	}
	c.Recorder.Display = strings.TrimSpace(c.Recorder.Display)
	if c.Recorder.Display == "" {
		if value, ok := os.LookupEnv("DISPLAY"); ok && strings.TrimSpace(value) != "" {
			c.Recorder.Display = strings.TrimSpace(value)
		} else {
			c.Recorder.Display = defaultDisplay
		}
	}
	if c.Recorder.SpeechRate <= 0 {
		c.Recorder.SpeechRate = defaultSpeechRate
	}
	if c.Recorder.ReadinessTimeoutSeconds < 0 {
		c.Recorder.ReadinessTimeoutSeconds = 0
	}
	return nil
}

func (c *Config) normalizeEncoder() error {
	var err error
	if strings.TrimSpace(c.Encoder.OutputPath) == "" {
		c.Encoder.OutputPath = defaultEncoderOutputPath
	}
	if c.Encoder.OutputPath, err = expandPath(c.Encoder.OutputPath); err != nil {
		return fmt.Errorf("encoder.output_path: %w", err)
	}
	c.Encoder.AudioDevice = strings.TrimSpace(c.Encoder.AudioDevice)
	if c.Encoder.AudioDevice == "" {
		if value, ok := os.LookupEnv("DEMOREEL_AUDIO_DEVICE"); ok {
			c.Encoder.AudioDevice = strings.TrimSpace(value)
		}
	}
	c.Encoder.ScreenDevice = strings.TrimSpace(c.Encoder.ScreenDevice)
	if c.Encoder.GraceSeconds <= 0 {
		c.Encoder.GraceSeconds = defaultEncoderGraceSecs
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
