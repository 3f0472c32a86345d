package reader_test

import (
	"testing"
	"time"

	"storyreel/internal/reader"
	"storyreel/internal/testsupport"
)

func TestAutoNarrationPlaysVisibleSpreadInOrder(t *testing.T) {
	player := testsupport.NewFakePlayer()
	session := newTestSession(t, testsupport.NewBook(2, 1, 2), player)
	openSession(t, session)

	done := session.StartAutoNarration()
	waitDone(t, done, "auto narration never finished")

	plays := player.Plays()
	if len(plays) != 2 || plays[0] != "audio-1" || plays[1] != "audio-2" {
		t.Fatalf("plays = %v, want strictly ordered [audio-1 audio-2]", plays)
	}
	if session.AutoNarrating() {
		t.Fatal("auto narration flag should clear after the loop ends")
	}
}

func TestAutoNarrationAdvancesAcrossSpreads(t *testing.T) {
	player := testsupport.NewFakePlayer()
	session := newTestSession(t, testsupport.NewBook(4, 1, 2, 3, 4), player)
	openSession(t, session)

	done := session.StartAutoNarration()
	waitDone(t, done, "auto narration never finished")

	want := []string{"audio-1", "audio-2", "audio-3", "audio-4"}
	plays := player.Plays()
	if len(plays) != len(want) {
		t.Fatalf("plays = %v, want %v", plays, want)
	}
	for i := range want {
		if plays[i] != want[i] {
			t.Fatalf("plays = %v, want %v", plays, want)
		}
	}
	if got := session.Snapshot().SpreadStart; got != 2 {
		t.Fatalf("loop should stop on the last spread, spread = %d", got)
	}
}

func TestAutoNarrationOpensClosedCover(t *testing.T) {
	player := testsupport.NewFakePlayer()
	session := newTestSession(t, testsupport.NewBook(2, 1), player)

	done := session.StartAutoNarration()
	waitFor(t, func() bool {
		return session.Snapshot().Cover == reader.CoverOpen
	}, "auto narration never opened the cover")
	waitDone(t, done, "auto narration never finished")

	if player.PlayCount() != 1 {
		t.Fatalf("plays = %v, want one clip", player.Plays())
	}
}

func TestAutoNarrationWithNoNarratablePages(t *testing.T) {
	player := testsupport.NewFakePlayer()
	session := newTestSession(t, testsupport.NewBook(6), player)
	openSession(t, session)

	done := session.StartAutoNarration()
	waitDone(t, done, "auto narration never finished")

	if player.PlayCount() != 0 {
		t.Fatalf("no audio should ever be created, got %v", player.Plays())
	}
	if session.AutoNarrating() {
		t.Fatal("auto narration flag should clear")
	}
	if got := session.Snapshot().SpreadStart; got != 4 {
		t.Fatalf("loop should have advanced to the final spread, got %d", got)
	}
}

func TestAutoNarrationCancellationStopsMutation(t *testing.T) {
	player := testsupport.NewFakePlayer()
	player.Block()
	session := newTestSession(t, testsupport.NewBook(6, 1, 3, 5), player)
	openSession(t, session)

	done := session.StartAutoNarration()
	waitFor(t, func() bool {
		return player.PlayCount() == 1
	}, "first narration never started")

	session.StopAutoNarration(true)
	spread := session.Snapshot().SpreadStart
	plays := player.PlayCount()

	player.Release()
	waitDone(t, done, "cancelled loop never exited")
	time.Sleep(5 * testPageTurn)

	view := session.Snapshot()
	if view.SpreadStart != spread {
		t.Fatalf("cancelled loop mutated spread: %d -> %d", spread, view.SpreadStart)
	}
	if player.PlayCount() != plays {
		t.Fatalf("cancelled loop started more audio: %d -> %d", plays, player.PlayCount())
	}
	if view.AutoNarrating || view.NarratingPage != 0 {
		t.Fatalf("cancelled loop left narration state behind: %+v", view)
	}
}

func TestManualToggleCancelsAutoWithoutGlitch(t *testing.T) {
	player := testsupport.NewFakePlayer()
	player.Block()
	session := newTestSession(t, testsupport.NewBook(4, 1, 3), player)
	openSession(t, session)

	done := session.StartAutoNarration()
	waitFor(t, func() bool {
		return session.NarratingPage() == 1
	}, "auto narration never started page 1")

	session.TogglePageNarration(3)
	waitFor(t, func() bool {
		return session.NarratingPage() == 3
	}, "manual narration never took over")

	if session.AutoNarrating() {
		t.Fatal("manual toggle must invalidate the auto loop")
	}

	player.Release()
	waitDone(t, done, "invalidated loop never exited")
}

func TestToggleOffNarratingPageCancelsAuto(t *testing.T) {
	player := testsupport.NewFakePlayer()
	player.Block()
	session := newTestSession(t, testsupport.NewBook(6, 1, 2, 3, 4, 5, 6), player)
	openSession(t, session)

	done := session.StartAutoNarration()
	waitFor(t, func() bool {
		return session.NarratingPage() == 1
	}, "auto narration never started page 1")

	// Toggling the page that is narrating is a stop, and like every manual
	// action it must invalidate the loop, not read as clip completion.
	session.TogglePageNarration(1)
	waitFor(t, func() bool {
		return session.NarratingPage() == 0
	}, "toggle never stopped the clip")
	if session.AutoNarrating() {
		t.Fatal("toggling off the narrating page must invalidate the auto loop")
	}

	player.Release()
	waitDone(t, done, "invalidated loop never exited")
	time.Sleep(5 * testPageTurn)

	if got := player.PlayCount(); got != 1 {
		t.Fatalf("auto loop kept playing after manual stop: %d clips %v", got, player.Plays())
	}
	if got := session.Snapshot().SpreadStart; got != 0 {
		t.Fatalf("invalidated loop advanced the spread to %d", got)
	}
}

func TestManualNavigationCancelsAuto(t *testing.T) {
	player := testsupport.NewFakePlayer()
	player.Block()
	session := newTestSession(t, testsupport.NewBook(6, 1, 3, 5), player)
	openSession(t, session)

	done := session.StartAutoNarration()
	waitFor(t, func() bool {
		return session.NarratingPage() == 1
	}, "auto narration never started")

	session.GoNext()
	if session.AutoNarrating() {
		t.Fatal("direct navigation must invalidate the auto loop")
	}

	player.Release()
	waitDone(t, done, "invalidated loop never exited")
}
