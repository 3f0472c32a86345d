// Package book defines the resolved storybook input consumed by the reader.
//
// A Book is owned by the host that loaded it; the reader never mutates one.
package book

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid marks a book that fails structural validation.
var ErrInvalid = errors.New("invalid book")

// SourcePage is one generated story page. Page numbers are 1-based, unique,
// and monotonically increasing; they may be sparse.
type SourcePage struct {
	Page        int    `json:"page"`
	Content     string `json:"content"`
	IsHighlight bool   `json:"isHighlight"`
}

// Narration binds narration audio to a page number. Audio may be a file path
// or a base64 data URL.
type Narration struct {
	Page  int    `json:"page"`
	Audio string `json:"audio"`
}

// Book is a fully resolved storybook: ordered pages plus optional cover,
// highlight, and final illustrations and per-page narration.
type Book struct {
	Title          string       `json:"title"`
	AuthorName     string       `json:"authorName,omitempty"`
	Pages          []SourcePage `json:"pages"`
	CoverImage     string       `json:"coverImage,omitempty"`
	HighlightImage string       `json:"highlightImage,omitempty"`
	FinalImage     string       `json:"finalImage,omitempty"`
	Narrations     []Narration  `json:"narrations,omitempty"`
}

// NarrationsByPage indexes narrations by page number, last writer wins on
// duplicate page numbers.
func (b *Book) NarrationsByPage() map[int]string {
	if len(b.Narrations) == 0 {
		return nil
	}
	byPage := make(map[int]string, len(b.Narrations))
	for _, n := range b.Narrations {
		if strings.TrimSpace(n.Audio) == "" {
			continue
		}
		byPage[n.Page] = n.Audio
	}
	return byPage
}

// Validate checks structural invariants: a title, at least one page, and
// unique monotonically increasing page numbers.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if len(b.Pages) == 0 {
		return fmt.Errorf("%w: at least one page is required", ErrInvalid)
	}
	previous := 0
	for i, page := range b.Pages {
		if page.Page <= previous {
			return fmt.Errorf("%w: page numbers must be unique and increasing (index %d has page %d after %d)",
				ErrInvalid, i, page.Page, previous)
		}
		previous = page.Page
	}
	return nil
}
