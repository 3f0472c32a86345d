// Package reader implements the storybook playback orchestrator.
//
// A Session turns a resolved book into an animated, navigable open-book
// experience: cover flip, spread navigation with page-turn transitions,
// single-page versus two-page layout, manual narration toggling, and an
// auto-narration mode that plays every page's audio in order.
//
// The session serializes all state behind one mutex. Animation timers and the
// auto-narration goroutine re-validate generation counters after every
// suspension point before touching state, so a cancelled timer or a stale
// loop iteration can never clobber newer state.
package reader
