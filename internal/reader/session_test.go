package reader_test

import (
	"sync/atomic"
	"testing"
	"time"

	"storyreel/internal/reader"
	"storyreel/internal/testsupport"
)

func TestOpenCoverFlipsThenOpens(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(4), nil)

	session.OpenCover()
	if got := session.Snapshot().Cover; got != reader.CoverFlipping {
		t.Fatalf("cover = %s immediately after OpenCover, want flipping", got)
	}

	waitFor(t, func() bool {
		return session.Snapshot().Cover == reader.CoverOpen
	}, "cover never opened")

	view := session.Snapshot()
	if view.SpreadStart != 0 || view.Turn != nil {
		t.Fatalf("fresh open should land on spread 0 with no turn: %+v", view)
	}
}

func TestOpenCoverReentrantIsNoOp(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(4), nil)
	openSession(t, session)

	session.OpenCover()
	if got := session.Snapshot().Cover; got != reader.CoverOpen {
		t.Fatalf("re-entrant OpenCover changed state to %s", got)
	}
}

func TestSpreadNavigationGuards(t *testing.T) {
	// Two-page mode, four reader pages: one forward turn exists, then the
	// last spread is reached.
	session := newTestSession(t, testsupport.NewBook(4), nil)
	openSession(t, session)

	view := session.Snapshot()
	if !view.CanGoNext || view.CanGoPrevious {
		t.Fatalf("at spread 0: CanGoNext=%v CanGoPrevious=%v", view.CanGoNext, view.CanGoPrevious)
	}

	session.GoNext()
	waitFor(t, func() bool {
		return session.Snapshot().SpreadStart == 2
	}, "GoNext never landed on spread 2")

	view = session.Snapshot()
	if view.CanGoNext {
		t.Fatal("CanGoNext should be false on the last spread")
	}
	if !view.AtLastSpread {
		t.Fatal("last spread should surface the return-to-cover affordance")
	}

	// GoNext on the last spread is ignored.
	session.GoNext()
	time.Sleep(3 * testPageTurn)
	if got := session.Snapshot().SpreadStart; got != 2 {
		t.Fatalf("GoNext past the end moved spread to %d", got)
	}
}

func TestSecondTurnIgnoredWhileInFlight(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(8), nil, func(o *reader.Options) {
		o.PageTurnDuration = 80 * time.Millisecond
	})
	openSession(t, session)

	session.GoNext()
	if session.Snapshot().Turn == nil {
		t.Fatal("expected a page turn in flight")
	}
	session.GoNext() // ignored: transition record is the lock

	waitFor(t, func() bool {
		view := session.Snapshot()
		return view.Turn == nil && view.SpreadStart != 0
	}, "turn never resolved")

	if got := session.Snapshot().SpreadStart; got != 2 {
		t.Fatalf("spread = %d after overlapping GoNext calls, want 2", got)
	}
}

func TestTurnFacesHoldSheetContent(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(6), nil, func(o *reader.Options) {
		o.PageTurnDuration = 80 * time.Millisecond
	})
	openSession(t, session)

	session.GoNext()
	view := session.Snapshot()
	if view.Turn == nil {
		t.Fatal("expected a page turn in flight")
	}
	if view.Turn.Front.Number != 2 {
		t.Fatalf("turn front should be the outgoing right page (2), got %d", view.Turn.Front.Number)
	}
	if view.Turn.Back.Number != 3 {
		t.Fatalf("turn back should be the incoming left page (3), got %d", view.Turn.Back.Number)
	}
	if view.Turn.TargetSpreadStart != 2 {
		t.Fatalf("turn target = %d, want 2", view.Turn.TargetSpreadStart)
	}
}

func TestSingleLayoutJumpsWithoutTransition(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(4), nil, func(o *reader.Options) {
		o.Layout = reader.LayoutSingle
	})
	openSession(t, session)

	session.GoNext()
	view := session.Snapshot()
	if view.Turn != nil {
		t.Fatal("single layout must not animate page turns")
	}
	if view.SpreadStart != 1 {
		t.Fatalf("spread = %d, want 1 (step of one page)", view.SpreadStart)
	}
}

func TestLayoutFlipCancelsInFlightTurn(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(8), nil, func(o *reader.Options) {
		o.PageTurnDuration = 60 * time.Millisecond
	})
	openSession(t, session)

	session.GoNext()
	if session.Snapshot().Turn == nil {
		t.Fatal("expected a page turn in flight")
	}

	session.SetLayout(reader.LayoutSingle)
	view := session.Snapshot()
	if view.Turn != nil {
		t.Fatal("layout flip to single must force-cancel the transition")
	}

	// The cancelled timer must not apply its target later.
	time.Sleep(120 * time.Millisecond)
	if got := session.Snapshot().SpreadStart; got != 0 {
		t.Fatalf("cancelled turn still moved spread to %d", got)
	}
}

func TestViewportWidthDrivesLayout(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(4), nil, func(o *reader.Options) {
		o.BreakpointColumns = 80
	})
	openSession(t, session)

	session.HandleViewportWidth(60)
	if got := session.Snapshot().Layout; got != reader.LayoutSingle {
		t.Fatalf("layout = %s at 60 columns, want single", got)
	}
	session.HandleViewportWidth(120)
	if got := session.Snapshot().Layout; got != reader.LayoutSpread {
		t.Fatalf("layout = %s at 120 columns, want spread", got)
	}
}

func TestCloseToCoverIgnoredDuringTurn(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(8), nil, func(o *reader.Options) {
		o.PageTurnDuration = 60 * time.Millisecond
	})
	openSession(t, session)

	session.GoNext()
	session.CloseToCover()
	if got := session.Snapshot().Cover; got != reader.CoverOpen {
		t.Fatalf("close during turn changed cover to %s", got)
	}
}

func TestRoundTripMatchesFirstOpen(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(4), nil)
	openSession(t, session)
	first := session.Snapshot()

	session.GoNext()
	waitFor(t, func() bool {
		return session.Snapshot().SpreadStart == 2
	}, "never reached last spread")

	session.CloseToCover()
	waitFor(t, func() bool {
		return session.Snapshot().Cover == reader.CoverClosed
	}, "cover never returned")

	openSession(t, session)
	second := session.Snapshot()

	if second.SpreadStart != first.SpreadStart || second.SpreadStart != 0 {
		t.Fatalf("reopen spread = %d, want 0", second.SpreadStart)
	}
	if second.Turn != nil || second.NarratingPage != 0 || second.AutoNarrating {
		t.Fatalf("reopen state not pristine: %+v", second)
	}
}

func TestHandleLeftEdgeBranches(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(4), nil)
	openSession(t, session)

	session.GoNext()
	waitFor(t, func() bool {
		return session.Snapshot().SpreadStart == 2
	}, "never advanced")

	// A previous spread exists: the left edge turns back.
	session.HandleLeftEdge()
	waitFor(t, func() bool {
		return session.Snapshot().SpreadStart == 0 && session.Snapshot().Turn == nil
	}, "left edge never turned back")

	if got := session.Snapshot().Cover; got != reader.CoverOpen {
		t.Fatalf("left edge with previous spread should not close, cover = %s", got)
	}

	// No previous spread: the left edge closes to the cover.
	session.HandleLeftEdge()
	waitFor(t, func() bool {
		return session.Snapshot().Cover == reader.CoverClosed
	}, "left edge on first spread never closed the cover")
}

func TestCloseInvokesCallbackExactlyOnce(t *testing.T) {
	var closes atomic.Int64
	session := newTestSession(t, testsupport.NewBook(2), nil, func(o *reader.Options) {
		o.OnClose = func() { closes.Add(1) }
	})

	session.HandleKey(reader.KeyEscape)
	session.HandleKey(reader.KeyEscape)
	session.Close()

	if got := closes.Load(); got != 1 {
		t.Fatalf("OnClose invoked %d times, want exactly 1", got)
	}
	if !session.Closed() {
		t.Fatal("session should report closed")
	}
}

func TestArrowKeysInactiveWhileCoverClosed(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(4), nil)

	session.HandleKey(reader.KeyArrowRight)
	session.HandleKey(reader.KeyArrowLeft)

	view := session.Snapshot()
	if view.Cover != reader.CoverClosed || view.SpreadStart != 0 {
		t.Fatalf("arrow keys acted on a closed cover: %+v", view)
	}
}

func TestSnapshotVisiblePages(t *testing.T) {
	session := newTestSession(t, testsupport.NewBook(3), nil)
	openSession(t, session)

	view := session.Snapshot()
	if view.Left == nil || view.Left.Number != 1 {
		t.Fatalf("left page = %+v, want page 1", view.Left)
	}
	if view.Right == nil || view.Right.Number != 2 {
		t.Fatalf("right page = %+v, want page 2", view.Right)
	}

	session.SetLayout(reader.LayoutSingle)
	view = session.Snapshot()
	if view.Right != nil {
		t.Fatal("single layout must not expose a right page")
	}
}
