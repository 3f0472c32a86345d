package reader

import (
	"context"
	"time"

	"storyreel/internal/logging"
)

// StartAutoNarration begins automatic sequential narration: the cover is
// opened if needed, then every visible narratable page is played strictly
// left to right, advancing spreads until no further spread exists. The
// returned channel closes when the loop exits, whether it ran to the end or
// was cancelled.
//
// The run id is the sole cancellation token: every resumption point in the
// loop re-checks the id it captured at start and exits silently once any
// manual action (navigation, narration toggle, close) has advanced it.
func (s *Session) StartAutoNarration() <-chan struct{} {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return closedChannel()
	}
	s.invalidateAutoLocked()
	s.autoRun++
	run := s.autoRun
	s.autoActive = true
	ctx, cancel := context.WithCancel(context.Background())
	s.autoCancel = cancel
	s.mu.Unlock()

	s.logger.Debug("auto narration started", logging.Uint64(logging.FieldRunID, run))
	s.notifyChange()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.runAutoNarration(ctx, run)
	}()
	return done
}

// StopAutoNarration invalidates the auto loop. With stopPlayback the current
// audio is stopped as well; without it, playback is left alone so switching
// from auto to manual narration does not produce an audible double-stop
// glitch.
func (s *Session) StopAutoNarration(stopPlayback bool) {
	s.mu.Lock()
	s.invalidateAutoLocked()
	s.mu.Unlock()
	if stopPlayback {
		s.StopNarration()
		return
	}
	s.notifyChange()
}

// AutoNarrating reports whether the auto loop is active.
func (s *Session) AutoNarrating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoActive
}

// invalidateAutoLocked advances the run id and releases the loop context.
// Manual actions call this as their first effect, before their own state
// change, so a stale loop iteration can never clobber newer state.
func (s *Session) invalidateAutoLocked() {
	s.autoRun++
	s.autoActive = false
	if s.autoCancel != nil {
		s.autoCancel()
		s.autoCancel = nil
	}
}

func (s *Session) autoRunCurrent(run uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && run == s.autoRun
}

func (s *Session) runAutoNarration(ctx context.Context, run uint64) {
	defer s.settleAuto(run)

	if s.coverState() != CoverOpen {
		s.OpenCover()
		// Spread state is not valid mid-flip; wait the animation out plus a
		// beat of padding before reading it.
		if !s.autoSleep(ctx, s.coverFlip+s.autoPad) {
			return
		}
	}

	for {
		if !s.autoRunCurrent(run) {
			return
		}

		tracks := s.visibleNarratable()
		if len(tracks) == 0 {
			if !s.autoAdvance(run) {
				return
			}
			if !s.autoSleep(ctx, s.pageTurn+s.autoPad) {
				return
			}
			continue
		}

		for _, page := range tracks {
			if !s.autoRunCurrent(run) {
				return
			}
			pb := s.beginNarration(page, run, true)
			if pb == nil {
				if !s.autoRunCurrent(run) {
					return
				}
				continue
			}
			s.notifyChange()
			select {
			case <-ctx.Done():
				return
			case <-pb.done:
			}
		}

		if !s.autoRunCurrent(run) {
			return
		}
		if !s.autoAdvance(run) {
			return
		}
		if !s.autoSleep(ctx, s.pageTurn+s.autoPad) {
			return
		}
	}
}

// settleAuto clears the active flag when the loop that owns run exits on its
// own; a loop that was invalidated leaves newer state untouched.
func (s *Session) settleAuto(run uint64) {
	s.mu.Lock()
	if run != s.autoRun {
		s.mu.Unlock()
		return
	}
	s.autoActive = false
	if s.autoCancel != nil {
		s.autoCancel()
		s.autoCancel = nil
	}
	s.mu.Unlock()
	s.logger.Debug("auto narration finished", logging.Uint64(logging.FieldRunID, run))
	s.notifyChange()
}

// autoAdvance moves to the next spread on behalf of the loop. It refuses when
// the run is stale, the cover is not open, a turn is already in flight, or no
// next spread exists; refusing ends the loop.
func (s *Session) autoAdvance(run uint64) bool {
	s.mu.Lock()
	if s.closed || run != s.autoRun || s.cover != CoverOpen || s.turn != nil {
		s.mu.Unlock()
		return false
	}
	advanced := s.advanceLocked(TurnNext)
	s.mu.Unlock()
	if advanced {
		s.notifyChange()
	}
	return advanced
}

// visibleNarratable returns the narratable text pages of the current spread
// in left-to-right order: one candidate in single-page layout, up to two in
// spread layout.
func (s *Session) visibleNarratable() []Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.cover != CoverOpen {
		return nil
	}
	visible := s.layout.AdvanceStep()
	pages := make([]Page, 0, visible)
	for i := s.spreadStart; i < s.spreadStart+visible && i < len(s.pages); i++ {
		if s.pages[i].IsNarratable() {
			pages = append(pages, s.pages[i])
		}
	}
	return pages
}

func (s *Session) coverState() CoverState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cover
}

func (s *Session) autoSleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func closedChannel() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
