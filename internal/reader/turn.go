package reader

import "time"

// TurnDirection identifies which way a page turn moves.
type TurnDirection string

const (
	TurnNext     TurnDirection = "next"
	TurnPrevious TurnDirection = "previous"
)

// PageTurn is the ephemeral record of an in-flight page-turn animation. Front
// and Back are the two faces of the turning sheet: the outgoing page content
// and the incoming page content of the target spread. While a PageTurn exists
// no second transition may start; its presence is the mutual-exclusion lock.
type PageTurn struct {
	Direction         TurnDirection
	TargetSpreadStart int
	Front             Page
	Back              Page
}

// buildTurnLocked assembles the animated transition for a navigation request,
// or reports false when the request should fall back to a direct index jump
// (single-page layout, or no valid page on both sides of the turning sheet).
func (s *Session) buildTurnLocked(direction TurnDirection, target int) (PageTurn, bool) {
	if s.layout != LayoutSpread {
		return PageTurn{}, false
	}
	switch direction {
	case TurnNext:
		if s.spreadStart+1 >= len(s.pages) || target >= len(s.pages) {
			return PageTurn{}, false
		}
		return PageTurn{
			Direction:         TurnNext,
			TargetSpreadStart: target,
			Front:             s.pages[s.spreadStart+1],
			Back:              s.pages[target],
		}, true
	case TurnPrevious:
		if target+1 >= len(s.pages) {
			return PageTurn{}, false
		}
		return PageTurn{
			Direction:         TurnPrevious,
			TargetSpreadStart: target,
			Front:             s.pages[s.spreadStart],
			Back:              s.pages[target+1],
		}, true
	}
	return PageTurn{}, false
}

// startTurnLocked installs the transition record and arms its completion
// timer. Only one timer may be outstanding; the generation counter makes a
// timer that lost a cancellation race fire as a no-op.
func (s *Session) startTurnLocked(turn PageTurn) {
	s.turn = &turn
	s.turnGen++
	gen := s.turnGen
	s.turnTimer = time.AfterFunc(s.pageTurn, func() {
		s.finishTurn(gen)
	})
}

func (s *Session) finishTurn(gen uint64) {
	s.mu.Lock()
	if s.closed || s.turn == nil || gen != s.turnGen {
		s.mu.Unlock()
		return
	}
	s.spreadStart = s.turn.TargetSpreadStart
	s.turn = nil
	s.turnTimer = nil
	s.mu.Unlock()
	s.notifyChange()
}

// cancelTurnLocked force-clears an in-flight transition: timer stopped,
// record dropped, generation bumped so a racing fire is ignored.
func (s *Session) cancelTurnLocked() {
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
	s.turn = nil
	s.turnGen++
}
