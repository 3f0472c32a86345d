package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"storyreel/internal/logging"
)

// CommandPlayer shells out to an external audio player for each clip. The
// audio source path is appended as the final argument of the configured
// command. Data URLs are materialized into cacheDir before playback.
type CommandPlayer struct {
	command  []string
	cacheDir string
	logger   *slog.Logger
}

// NewCommandPlayer builds a player around the given command line. The command
// must block until playback completes.
func NewCommandPlayer(command []string, cacheDir string, logger *slog.Logger) (*CommandPlayer, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("player command must not be empty")
	}
	return &CommandPlayer{
		command:  append([]string(nil), command...),
		cacheDir: cacheDir,
		logger:   logging.NewComponentLogger(logger, "audio-player"),
	}, nil
}

// Play runs the external player against the resolved audio file. Cancelling
// ctx kills the player process.
func (p *CommandPlayer) Play(ctx context.Context, source string) error {
	if strings.TrimSpace(source) == "" {
		return ErrNoSource
	}

	path, err := p.resolveSource(source)
	if err != nil {
		return err
	}

	args := append(append([]string(nil), p.command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.command[0], args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.logger.Debug("player command failed",
			logging.String("command", p.command[0]),
			logging.Error(err),
		)
		return fmt.Errorf("play %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (p *CommandPlayer) resolveSource(source string) (string, error) {
	if !strings.HasPrefix(source, "data:") {
		return source, nil
	}
	return materializeDataURL(source, p.cacheDir)
}
