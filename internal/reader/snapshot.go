package reader

// View is an immutable snapshot of the session for rendering. Left is the
// page at the spread start; Right is the following page in spread layout,
// nil otherwise.
type View struct {
	Title      string
	Author     string
	CoverImage string

	Closed      bool
	Cover       CoverState
	Layout      LayoutMode
	SpreadStart int
	TotalPages  int

	Left  *Page
	Right *Page
	Turn  *PageTurn

	CanGoNext     bool
	CanGoPrevious bool
	// AtLastSpread marks the distinguished last-spread state where the next
	// control gives way to the return-to-cover affordance.
	AtLastSpread bool

	NarratingPage int
	AutoNarrating bool
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		Title:         s.title,
		Author:        s.author,
		CoverImage:    s.coverImage,
		Closed:        s.closed,
		Cover:         s.cover,
		Layout:        s.layout,
		SpreadStart:   s.spreadStart,
		TotalPages:    len(s.pages),
		CanGoNext:     s.canGoNextLocked(),
		CanGoPrevious: s.canGoPreviousLocked(),
		AtLastSpread:  s.cover == CoverOpen && s.spreadStart+s.layout.AdvanceStep() >= len(s.pages),
		AutoNarrating: s.autoActive,
	}
	if s.active != nil {
		view.NarratingPage = s.active.page
	}
	if s.turn != nil {
		turn := *s.turn
		view.Turn = &turn
	}
	if s.cover == CoverOpen && s.spreadStart < len(s.pages) {
		left := s.pages[s.spreadStart]
		view.Left = &left
		if s.layout == LayoutSpread && s.spreadStart+1 < len(s.pages) {
			right := s.pages[s.spreadStart+1]
			view.Right = &right
		}
	}
	return view
}
