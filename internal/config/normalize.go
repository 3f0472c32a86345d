package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeReader()
	c.normalizeAudio()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ShelfDir, err = expandPath(c.Paths.ShelfDir); err != nil {
		return fmt.Errorf("paths.shelf_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeReader() {
	if c.Reader.CoverFlipMs <= 0 {
		c.Reader.CoverFlipMs = defaultCoverFlipMs
	}
	if c.Reader.PageTurnMs <= 0 {
		c.Reader.PageTurnMs = defaultPageTurnMs
	}
	if c.Reader.AutoAdvancePadMs < 0 {
		c.Reader.AutoAdvancePadMs = defaultAutoAdvancePadMs
	}
	if c.Reader.BreakpointColumns <= 0 {
		c.Reader.BreakpointColumns = defaultBreakpointColumns
	}
}

func (c *Config) normalizeAudio() {
	trimmed := make([]string, 0, len(c.Audio.PlayerCommand))
	for _, arg := range c.Audio.PlayerCommand {
		if value := strings.TrimSpace(arg); value != "" {
			trimmed = append(trimmed, value)
		}
	}
	if len(trimmed) == 0 {
		trimmed = defaultPlayerCommand()
	}
	c.Audio.PlayerCommand = trimmed
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
