package config

const (
	defaultDataDir       = "~/.local/share/timemark"
	defaultLogDir        = "~/.local/share/timemark/logs"
	defaultPlayerBinary  = "mpv"
	defaultFFmpegBinary  = "ffmpeg"
	defaultBeforeSeconds = 2
	defaultAfterSeconds  = 3
	defaultFPS           = 5
	defaultWidth         = 320
	defaultHeight        = 240
	defaultCRF           = 23
	defaultPreset        = "veryfast"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Player: Player{
			Binary:     defaultPlayerBinary,
			SocketPath: defaultSocketPath(),
		},
		Extract: Extract{
			FFmpegBinary:  defaultFFmpegBinary,
			BeforeSeconds: defaultBeforeSeconds,
			AfterSeconds:  defaultAfterSeconds,
			FPS:           defaultFPS,
			Width:         defaultWidth,
			Height:        defaultHeight,
			CRF:           defaultCRF,
			Preset:        defaultPreset,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
