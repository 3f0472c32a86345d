package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"storyreel/internal/audio"
	"storyreel/internal/config"
	"storyreel/internal/logging"
	"storyreel/internal/shelf"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the file-backed logger for a command invocation. Command
// output goes to stdout; the log stays out of the reader's way.
func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	return logger, nil
}

// newPlayer builds the narration player selected by the configuration.
func (c *commandContext) newPlayer(logger *slog.Logger) (audio.Player, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Audio.Enabled {
		return audio.NopPlayer{}, nil
	}
	player, err := audio.NewCommandPlayer(cfg.Audio.PlayerCommand, cfg.Paths.CacheDir, logger)
	if err != nil {
		return nil, fmt.Errorf("configure audio player: %w", err)
	}
	return player, nil
}

// withShelf opens the shelf store, runs fn, and always closes the store.
func (c *commandContext) withShelf(fn func(*shelf.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := shelf.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
