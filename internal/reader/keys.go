package reader

// Key identifies the keyboard inputs the reader reacts to.
type Key string

const (
	KeyEscape     Key = "escape"
	KeyArrowLeft  Key = "arrow_left"
	KeyArrowRight Key = "arrow_right"
)

// HandleKey applies the reader keyboard bindings: Escape always closes the
// session (cancelling narration first); the arrow keys map to the same
// contextual previous/next actions as the pointer controls, and only act
// while the cover is open and pages exist.
func (s *Session) HandleKey(key Key) {
	switch key {
	case KeyEscape:
		s.Close()
	case KeyArrowLeft:
		if s.arrowsActive() {
			s.HandleLeftEdge()
		}
	case KeyArrowRight:
		if s.arrowsActive() {
			s.GoNext()
		}
	}
}

func (s *Session) arrowsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.cover == CoverOpen && len(s.pages) > 0
}
