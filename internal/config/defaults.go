package config

const (
	defaultShelfDir          = "~/.local/share/storyreel/shelf"
	defaultLogDir            = "~/.local/share/storyreel/logs"
	defaultCacheDir          = "~/.cache/storyreel/narration"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultCoverFlipMs       = 700
	defaultPageTurnMs        = 600
	defaultAutoAdvancePadMs  = 400
	defaultBreakpointColumns = 90
)

// defaultPlayerCommand invokes ffplay so narration works wherever ffmpeg is
// installed; the audio source path is appended as the final argument.
func defaultPlayerCommand() []string {
	return []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ShelfDir: defaultShelfDir,
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir,
		},
		Reader: Reader{
			CoverFlipMs:       defaultCoverFlipMs,
			PageTurnMs:        defaultPageTurnMs,
			AutoAdvancePadMs:  defaultAutoAdvancePadMs,
			BreakpointColumns: defaultBreakpointColumns,
		},
		Audio: Audio{
			Enabled:       true,
			PlayerCommand: defaultPlayerCommand(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
