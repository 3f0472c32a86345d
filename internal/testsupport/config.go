// Package testsupport provides shared helpers for package tests: temp-dir
// configs, canned books, and a controllable fake narration player.
package testsupport

import (
	"path/filepath"
	"testing"

	"storyreel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test
// and animation timings short enough for tests to wait out for real.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ShelfDir = filepath.Join(base, "shelf")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Reader.CoverFlipMs = 5
	cfg.Reader.PageTurnMs = 5
	cfg.Reader.AutoAdvancePadMs = 1
	cfg.Audio.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithPlayerCommand overrides the external player command on the test config.
func WithPlayerCommand(command ...string) ConfigOption {
	return func(c *config.Config) {
		c.Audio.Enabled = true
		c.Audio.PlayerCommand = command
	}
}
