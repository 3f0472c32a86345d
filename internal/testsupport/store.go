package testsupport

import (
	"testing"

	"storyreel/internal/shelf"
)

// MustOpenShelf opens a shelf store backed by a per-test temp directory and
// closes it when the test finishes.
func MustOpenShelf(t *testing.T) *shelf.Store {
	t.Helper()
	store, err := shelf.Open(NewConfig(t))
	if err != nil {
		t.Fatalf("open shelf store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close shelf store: %v", err)
		}
	})
	return store
}
