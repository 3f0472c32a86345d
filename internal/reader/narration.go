package reader

import (
	"context"

	"storyreel/internal/logging"
)

// playback is the single narration audio handle. Exactly one may exist at a
// time; it is always cancelled and awaited before being replaced or dropped.
type playback struct {
	page   int
	cancel context.CancelFunc
	done   chan struct{}
}

// TogglePageNarration implements the per-page narration control: toggling the
// page currently narrating stops it; toggling another page starts that page's
// narration exclusively. Either way any in-flight auto narration is
// invalidated first (without double-stopping the audio), like every other
// manual action.
func (s *Session) TogglePageNarration(pageNumber int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.active != nil && s.active.page == pageNumber {
		// Invalidate before stopping: during auto narration the loop would
		// otherwise read the stop as natural clip completion and move on.
		s.invalidateAutoLocked()
		s.mu.Unlock()
		s.StopNarration()
		return
	}
	s.invalidateAutoLocked()
	page, ok := s.textPageLocked(pageNumber)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.beginNarration(page, 0, false)
	s.notifyChange()
}

// StopNarration stops and detaches the active narration audio, if any.
func (s *Session) StopNarration() {
	s.playMu.Lock()
	s.detachActive()
	s.playMu.Unlock()
	s.notifyChange()
}

// NarratingPage returns the page number currently narrating, or 0.
func (s *Session) NarratingPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return 0
	}
	return s.active.page
}

// beginNarration replaces the active playback with one for the given page.
// The previous audio is always cancelled and awaited first. Pages without
// audio complete immediately and leave no playback behind. When enforceRun is
// set the captured auto run id is re-checked under the playback lock, so a
// stale auto iteration cannot displace audio a newer action started.
func (s *Session) beginNarration(page Page, run uint64, enforceRun bool) *playback {
	s.playMu.Lock()
	defer s.playMu.Unlock()

	if enforceRun && !s.autoRunCurrent(run) {
		return nil
	}

	s.detachActive()

	if page.Audio == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	pb := &playback{page: page.Number, cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	s.active = pb
	s.mu.Unlock()

	source := page.Audio
	go func() {
		defer close(pb.done)
		defer cancel()
		if err := s.player.Play(ctx, source); err != nil && ctx.Err() == nil {
			// Playback failure is treated like natural completion so the
			// reading experience never stalls on a bad clip.
			s.logger.Debug("narration playback ended with error",
				logging.Int(logging.FieldPage, pb.page),
				logging.Error(err),
			)
		}
		s.clearFinished(pb)
	}()
	return pb
}

// detachActive cancels the active playback and waits for its goroutine to
// finish, guaranteeing the audio handle is released before a replacement is
// created. Callers hold playMu.
func (s *Session) detachActive() {
	s.mu.Lock()
	pb := s.active
	s.active = nil
	s.mu.Unlock()
	if pb != nil {
		pb.cancel()
		<-pb.done
	}
}

// clearFinished drops the active marker after natural completion.
func (s *Session) clearFinished(pb *playback) {
	s.mu.Lock()
	if s.active != pb {
		s.mu.Unlock()
		return
	}
	s.active = nil
	s.mu.Unlock()
	s.notifyChange()
}

func (s *Session) textPageLocked(pageNumber int) (Page, bool) {
	for _, page := range s.pages {
		if page.Kind == PageText && page.Number == pageNumber {
			return page, true
		}
	}
	return Page{}, false
}

func (s *Session) stopPlayback() {
	s.playMu.Lock()
	s.detachActive()
	s.playMu.Unlock()
}
