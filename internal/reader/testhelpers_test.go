package reader_test

import (
	"testing"
	"time"

	"storyreel/internal/audio"
	"storyreel/internal/book"
	"storyreel/internal/logging"
	"storyreel/internal/reader"
)

const (
	testCoverFlip = 5 * time.Millisecond
	testPageTurn  = 5 * time.Millisecond
	// Generous relative to the animation timers so loop resumption never
	// races a timer that is still about to fire.
	testAutoPad = 25 * time.Millisecond
	waitTimeout = 3 * time.Second
)

func newTestSession(t *testing.T, b *book.Book, player audio.Player, mutate ...func(*reader.Options)) *reader.Session {
	t.Helper()
	opts := reader.Options{
		CoverFlipDuration:  testCoverFlip,
		PageTurnDuration:   testPageTurn,
		AutoAdvancePadding: testAutoPad,
		Layout:             reader.LayoutSpread,
		Logger:             logging.NewNop(),
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	session := reader.NewSession(b, player, opts)
	t.Cleanup(session.Close)
	return session
}

func openSession(t *testing.T, session *reader.Session) {
	t.Helper()
	session.OpenCover()
	waitFor(t, func() bool {
		return session.Snapshot().Cover == reader.CoverOpen
	}, "cover never opened")
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func waitDone(t *testing.T, done <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal(msg)
	}
}
