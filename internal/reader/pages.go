package reader

import "storyreel/internal/book"

// PageKind distinguishes the two reader page variants.
type PageKind string

const (
	PageIllustration PageKind = "illustration"
	PageText         PageKind = "text"
)

// Page is one derived unit rendered in the book view, distinct from a source
// story page. Illustration pages carry Image; text pages carry Content and,
// when narrated, Audio.
type Page struct {
	Kind    PageKind
	Number  int
	Content string
	Image   string
	Audio   string
}

// IsNarratable reports whether the page carries narration audio.
func (p Page) IsNarratable() bool {
	return p.Kind == PageText && p.Audio != ""
}

// BuildPages derives the flat ordered reader page sequence from source pages.
//
// An illustration page is inserted immediately before its text page when the
// page is the last page and a final image exists (the final image wins), or
// when the page is flagged highlight and a highlight image exists. At most one
// illustration precedes a given text page, relative source order is
// preserved, and a page without narration simply yields a text page with no
// audio. The derivation is pure; callers may rerun it freely whenever any
// input changes.
func BuildPages(src []book.SourcePage, narrations map[int]string, highlightImage, finalImage string) []Page {
	pages := make([]Page, 0, len(src)*2)
	for i, source := range src {
		image := ""
		if i == len(src)-1 && finalImage != "" {
			image = finalImage
		} else if source.IsHighlight && highlightImage != "" {
			image = highlightImage
		}
		if image != "" {
			pages = append(pages, Page{
				Kind:   PageIllustration,
				Number: source.Page,
				Image:  image,
			})
		}
		pages = append(pages, Page{
			Kind:    PageText,
			Number:  source.Page,
			Content: source.Content,
			Audio:   narrations[source.Page],
		})
	}
	return pages
}
