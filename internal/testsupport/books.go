package testsupport

import (
	"fmt"

	"storyreel/internal/book"
)

// NewBook builds a book with the given number of story pages. Page n carries
// content "Page n"; narrated selects which page numbers get narration audio
// named "audio-n".
func NewBook(pageCount int, narrated ...int) *book.Book {
	b := &book.Book{Title: "Test Book", AuthorName: "Tester"}
	for i := 1; i <= pageCount; i++ {
		b.Pages = append(b.Pages, book.SourcePage{
			Page:    i,
			Content: fmt.Sprintf("Page %d", i),
		})
	}
	for _, page := range narrated {
		b.Narrations = append(b.Narrations, book.Narration{
			Page:  page,
			Audio: fmt.Sprintf("audio-%d", page),
		})
	}
	return b
}
