package testsupport

import (
	"context"
	"errors"
	"sync"
)

// FakePlayer records playback requests. By default every clip completes
// immediately; Block makes playback hang until Release or cancellation, which
// lets tests freeze the reader mid-narration.
type FakePlayer struct {
	mu    sync.Mutex
	plays []string
	gate  chan struct{}
}

func NewFakePlayer() *FakePlayer {
	return &FakePlayer{}
}

func (p *FakePlayer) Play(ctx context.Context, source string) error {
	p.mu.Lock()
	p.plays = append(p.plays, source)
	gate := p.gate
	p.mu.Unlock()

	if gate == nil {
		return ctx.Err()
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Block makes subsequent Play calls hang until Release.
func (p *FakePlayer) Block() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gate == nil {
		p.gate = make(chan struct{})
	}
}

// Release unblocks all pending and future Play calls.
func (p *FakePlayer) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gate != nil {
		close(p.gate)
		p.gate = nil
	}
}

// Plays returns the sources played so far, in order.
func (p *FakePlayer) Plays() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.plays...)
}

// PlayCount returns how many playback requests have been made.
func (p *FakePlayer) PlayCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.plays)
}

// FailingPlayer returns an error from every Play call.
type FailingPlayer struct{}

func (FailingPlayer) Play(context.Context, string) error {
	return errors.New("playback failed")
}
