package reader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"storyreel/internal/audio"
	"storyreel/internal/book"
	"storyreel/internal/logging"
)

// CoverState tracks the book cover animation lifecycle.
type CoverState string

const (
	CoverClosed    CoverState = "closed"
	CoverFlipping  CoverState = "flipping"
	CoverOpen      CoverState = "open"
	CoverReturning CoverState = "returning"
)

// Options configures a Session.
type Options struct {
	CoverFlipDuration  time.Duration
	PageTurnDuration   time.Duration
	AutoAdvancePadding time.Duration
	// BreakpointColumns is the viewport width below which the reader uses
	// single-page layout.
	BreakpointColumns int
	// Layout is the initial layout mode; defaults to LayoutSpread.
	Layout LayoutMode
	Logger *slog.Logger
	// OnClose is invoked exactly once when the session closes.
	OnClose func()
	// OnChange is invoked after every observable state change. It must not
	// block; hosts typically trigger a re-render from it.
	OnChange func()
}

const (
	defaultCoverFlip  = 700 * time.Millisecond
	defaultPageTurn   = 600 * time.Millisecond
	defaultAutoPad    = 400 * time.Millisecond
	defaultBreakpoint = 90
)

// Session owns the cover, spread, transition, and narration state for one
// open book. All exported methods are safe for concurrent use.
type Session struct {
	id     string
	logger *slog.Logger
	player audio.Player

	title      string
	author     string
	coverImage string
	pages      []Page

	coverFlip  time.Duration
	pageTurn   time.Duration
	autoPad    time.Duration
	breakpoint int

	onClose  func()
	onChange func()

	mu          sync.Mutex
	closed      bool
	cover       CoverState
	layout      LayoutMode
	spreadStart int
	turn        *PageTurn
	turnTimer   *time.Timer
	turnGen     uint64
	coverTimer  *time.Timer
	coverGen    uint64

	// playMu serializes the stop-then-start sequence of narration playback so
	// at most one audio handle ever exists.
	playMu sync.Mutex
	active *playback

	autoRun    uint64
	autoActive bool
	autoCancel context.CancelFunc
}

// NewSession derives the reader pages from b and returns a session with the
// cover closed. The book is never mutated.
func NewSession(b *book.Book, player audio.Player, opts Options) *Session {
	if player == nil {
		player = audio.NopPlayer{}
	}
	layout := opts.Layout
	if layout == "" {
		layout = LayoutSpread
	}

	s := &Session{
		id:          uuid.NewString(),
		player:      player,
		title:       b.Title,
		author:      b.AuthorName,
		coverImage:  b.CoverImage,
		pages:       BuildPages(b.Pages, b.NarrationsByPage(), b.HighlightImage, b.FinalImage),
		coverFlip:   durationOrDefault(opts.CoverFlipDuration, defaultCoverFlip),
		pageTurn:    durationOrDefault(opts.PageTurnDuration, defaultPageTurn),
		autoPad:     durationOrDefault(opts.AutoAdvancePadding, defaultAutoPad),
		breakpoint:  positiveOrDefault(opts.BreakpointColumns, defaultBreakpoint),
		onClose:     opts.OnClose,
		onChange:    opts.OnChange,
		cover:       CoverClosed,
		layout:      layout,
		spreadStart: 0,
	}
	s.logger = logging.NewComponentLogger(opts.Logger, "reader").
		With(logging.String(logging.FieldSessionID, s.id))
	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// OpenCover starts the cover flip animation. It is a no-op unless the cover
// is fully closed.
func (s *Session) OpenCover() {
	s.mu.Lock()
	if s.closed || s.cover != CoverClosed {
		s.mu.Unlock()
		return
	}
	s.cover = CoverFlipping
	s.coverGen++
	gen := s.coverGen
	s.coverTimer = time.AfterFunc(s.coverFlip, func() {
		s.finishCoverFlip(gen)
	})
	s.mu.Unlock()
	s.logger.Debug("cover flip started")
	s.notifyChange()
}

func (s *Session) finishCoverFlip(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.coverGen || s.cover != CoverFlipping {
		s.mu.Unlock()
		return
	}
	s.cover = CoverOpen
	s.spreadStart = 0
	s.coverTimer = nil
	s.mu.Unlock()
	s.notifyChange()
}

// CloseToCover starts the closing animation back to the cover. It is a no-op
// while a page turn is in flight or the cover is not open. Narration, manual
// or auto, is cancelled first because it targets pages about to disappear.
func (s *Session) CloseToCover() {
	s.mu.Lock()
	if s.closed || s.cover != CoverOpen || s.turn != nil {
		s.mu.Unlock()
		return
	}
	s.invalidateAutoLocked()
	s.cover = CoverReturning
	s.coverGen++
	gen := s.coverGen
	s.coverTimer = time.AfterFunc(s.coverFlip, func() {
		s.finishCoverReturn(gen)
	})
	s.mu.Unlock()
	s.stopPlayback()
	s.notifyChange()
}

func (s *Session) finishCoverReturn(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.coverGen || s.cover != CoverReturning {
		s.mu.Unlock()
		return
	}
	s.cover = CoverClosed
	s.spreadStart = 0
	s.coverTimer = nil
	s.mu.Unlock()
	s.notifyChange()
}

// GoNext advances to the next spread, animated when a valid turning sheet
// exists. Ignored while the cover is not open, a turn is in flight, or no
// next spread exists.
func (s *Session) GoNext() {
	s.mu.Lock()
	if !s.navigableLocked() || !s.canGoNextLocked() {
		s.mu.Unlock()
		return
	}
	s.invalidateAutoLocked()
	s.advanceLocked(TurnNext)
	s.mu.Unlock()
	s.notifyChange()
}

// GoPrevious turns back one spread under the same guards as GoNext.
func (s *Session) GoPrevious() {
	s.mu.Lock()
	if !s.navigableLocked() || !s.canGoPreviousLocked() {
		s.mu.Unlock()
		return
	}
	s.invalidateAutoLocked()
	s.advanceLocked(TurnPrevious)
	s.mu.Unlock()
	s.notifyChange()
}

// HandleLeftEdge is the contextual left-edge control: it turns back a page
// when a previous spread exists, otherwise it closes to the cover.
func (s *Session) HandleLeftEdge() {
	s.mu.Lock()
	if s.closed || s.cover != CoverOpen || s.turn != nil {
		s.mu.Unlock()
		return
	}
	if s.canGoPreviousLocked() {
		s.invalidateAutoLocked()
		s.advanceLocked(TurnPrevious)
		s.mu.Unlock()
		s.notifyChange()
		return
	}
	s.mu.Unlock()
	s.CloseToCover()
}

// CanGoNext reports whether a further spread exists.
func (s *Session) CanGoNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canGoNextLocked()
}

// CanGoPrevious reports whether an earlier spread exists.
func (s *Session) CanGoPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canGoPreviousLocked()
}

func (s *Session) canGoNextLocked() bool {
	return s.spreadStart+s.layout.AdvanceStep() < len(s.pages)
}

func (s *Session) canGoPreviousLocked() bool {
	return s.spreadStart > 0
}

func (s *Session) navigableLocked() bool {
	return !s.closed && s.cover == CoverOpen && s.turn == nil
}

// advanceLocked moves the spread in the given direction, creating an animated
// transition when possible and falling back to a direct index jump otherwise.
// Returns false when no spread exists in that direction.
func (s *Session) advanceLocked(direction TurnDirection) bool {
	step := s.layout.AdvanceStep()
	var target int
	switch direction {
	case TurnNext:
		if s.spreadStart+step >= len(s.pages) {
			return false
		}
		target = s.spreadStart + step
	case TurnPrevious:
		if s.spreadStart <= 0 {
			return false
		}
		target = s.spreadStart - step
		if target < 0 {
			target = 0
		}
	default:
		return false
	}

	if turn, ok := s.buildTurnLocked(direction, target); ok {
		s.startTurnLocked(turn)
	} else {
		s.spreadStart = target
	}
	return true
}

// HandleViewportWidth reacts to a viewport resize. Flipping to single-page
// layout while a page turn is in flight force-cancels the transition: the
// two-sheet flip has no single-column equivalent, and the spread model and
// transition model must never disagree on pages per view.
func (s *Session) HandleViewportWidth(columns int) {
	s.SetLayout(LayoutForColumns(columns, s.breakpoint))
}

// SetLayout switches the layout mode directly.
func (s *Session) SetLayout(mode LayoutMode) {
	if mode != LayoutSingle && mode != LayoutSpread {
		return
	}
	s.mu.Lock()
	if s.closed || mode == s.layout {
		s.mu.Unlock()
		return
	}
	s.layout = mode
	cancelled := false
	if mode == LayoutSingle && s.turn != nil {
		s.cancelTurnLocked()
		cancelled = true
	}
	s.mu.Unlock()
	if cancelled {
		s.logger.Debug("page turn cancelled by layout change")
	}
	s.notifyChange()
}

// Close tears the session down: auto narration invalidated, timers stopped,
// audio detached, and the OnClose callback invoked. Only the first call has
// any effect.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.invalidateAutoLocked()
	s.closed = true
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
	if s.coverTimer != nil {
		s.coverTimer.Stop()
		s.coverTimer = nil
	}
	s.turn = nil
	onClose := s.onClose
	s.mu.Unlock()

	s.stopPlayback()
	s.logger.Debug("reader session closed")
	if onClose != nil {
		onClose()
	}
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}

func durationOrDefault(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}

func positiveOrDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
