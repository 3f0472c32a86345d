package shelf

import (
	"errors"
	"time"
)

// ErrNotFound indicates the requested book is not on the shelf.
var ErrNotFound = errors.New("book not on shelf")

// ErrLocked indicates another process holds the shelf lock.
var ErrLocked = errors.New("shelf is locked by another process")

// Entry is one shelved book.
type Entry struct {
	ID         string
	Title      string
	AuthorName string
	SourcePath string
	PageCount  int
	LastSpread int
	AddedAt    time.Time
	UpdatedAt  time.Time
}
