package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateReader(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.ShelfDir == "" {
		return errors.New("paths.shelf_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.CacheDir == "" {
		return errors.New("paths.cache_dir must be set")
	}
	return nil
}

func (c *Config) validateReader() error {
	if c.Reader.CoverFlipMs > 10_000 {
		return errors.New("reader.cover_flip_ms must be 10000 or less")
	}
	if c.Reader.PageTurnMs > 10_000 {
		return errors.New("reader.page_turn_ms must be 10000 or less")
	}
	if c.Reader.BreakpointColumns < 20 {
		return errors.New("reader.breakpoint_columns must be at least 20")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.Enabled && len(c.Audio.PlayerCommand) == 0 {
		return errors.New("audio.player_command must be set when audio is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
