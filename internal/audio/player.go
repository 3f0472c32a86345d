// Package audio plays narration clips through an external player process.
package audio

import (
	"context"
	"errors"
)

// ErrNoSource indicates a playback request with an empty audio source.
var ErrNoSource = errors.New("no audio source")

// Player plays one narration clip and blocks until playback finishes, fails,
// or ctx is cancelled. The reader treats every non-nil error the same as
// natural completion, so implementations should not retry.
type Player interface {
	Play(ctx context.Context, source string) error
}

// NopPlayer completes every playback immediately. Used when audio is disabled
// and for headless runs.
type NopPlayer struct{}

func (NopPlayer) Play(ctx context.Context, source string) error {
	if source == "" {
		return ErrNoSource
	}
	return ctx.Err()
}
