package config

const (
	defaultStateDir           = "~/.local/share/demoreel"
	defaultLogDir             = "~/.local/share/demoreel/logs"
	defaultScaffoldRoot       = "."
	defaultOutputPath         = "~/Videos/saas_demo.mp4"
	defaultFrameRate          = 30
	defaultFrameWidth         = 1280
	defaultFrameHeight        = 720
	defaultSpeechRate         = 150
	defaultComposeDir         = "~/multi-tenant-saas-platform"
	defaultHealthURL          = "http://localhost:5000/api/health"
	defaultComposeTimeout     = 60
	defaultHealthCheckTimeout = 10
	defaultDisplay            = ":0.0"
	defaultEncoderOutputPath  = "~/Videos/saas_demo_encoder.mp4"
	defaultEncoderGraceSecs   = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Scaffold: Scaffold{
			Root: defaultScaffoldRoot,
		},
		Recorder: Recorder{
			OutputPath:            defaultOutputPath,
			FrameRate:             defaultFrameRate,
			Width:                 defaultFrameWidth,
			Height:                defaultFrameHeight,
			SpeechEnabled:         true,
			SpeechRate:            defaultSpeechRate,
			ComposeDir:            defaultComposeDir,
			HealthURL:             defaultHealthURL,
			ComposeTimeoutSeconds: defaultComposeTimeout,
			HealthTimeoutSeconds:  defaultHealthCheckTimeout,
		},
		Encoder: Encoder{
			OutputPath:   defaultEncoderOutputPath,
			FrameRate:    defaultFrameRate,
			GraceSeconds: defaultEncoderGraceSecs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
