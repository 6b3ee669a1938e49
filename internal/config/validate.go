package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRecorder(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRecorder() error {
	if err := ensurePositiveMap(map[string]int{
		"recorder.frame_rate":              c.Recorder.FrameRate,
		"recorder.width":                   c.Recorder.Width,
		"recorder.height":                  c.Recorder.Height,
		"recorder.compose_timeout_seconds": c.Recorder.ComposeTimeoutSeconds,
		"recorder.health_timeout_seconds":  c.Recorder.HealthTimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Recorder.Width%2 != 0 || c.Recorder.Height%2 != 0 {
		return errors.New("recorder.width and recorder.height must be even for yuv420p output")
	}
	if strings.TrimSpace(c.Recorder.OutputPath) == "" {
		return errors.New("recorder.output_path must be set")
	}
	parsed, err := url.Parse(c.Recorder.HealthURL)
	if err != nil {
		return fmt.Errorf("recorder.health_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("recorder.health_url must be http or https, got %q", c.Recorder.HealthURL)
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.FrameRate <= 0 {
		return errors.New("encoder.frame_rate must be positive")
	}
	if strings.TrimSpace(c.Encoder.OutputPath) == "" {
		return errors.New("encoder.output_path must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
