package reader_test

import (
	"testing"

	"storyreel/internal/book"
	"storyreel/internal/reader"
)

func TestBuildPagesInsertsHighlightIllustration(t *testing.T) {
	src := []book.SourcePage{
		{Page: 1, Content: "A", IsHighlight: false},
		{Page: 2, Content: "B", IsHighlight: true},
	}
	pages := reader.BuildPages(src, map[int]string{1: "a1"}, "H", "")

	want := []reader.Page{
		{Kind: reader.PageText, Number: 1, Content: "A", Audio: "a1"},
		{Kind: reader.PageIllustration, Number: 2, Image: "H"},
		{Kind: reader.PageText, Number: 2, Content: "B"},
	}
	if len(pages) != len(want) {
		t.Fatalf("derived %d pages, want %d: %+v", len(pages), len(want), pages)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Fatalf("page %d = %+v, want %+v", i, pages[i], want[i])
		}
	}
}

func TestBuildPagesFinalImageWinsOnLastPage(t *testing.T) {
	src := []book.SourcePage{
		{Page: 1, Content: "A"},
		{Page: 2, Content: "B", IsHighlight: true},
	}
	pages := reader.BuildPages(src, nil, "H", "F")

	if len(pages) != 3 {
		t.Fatalf("derived %d pages, want 3", len(pages))
	}
	if pages[1].Kind != reader.PageIllustration || pages[1].Image != "F" {
		t.Fatalf("expected final image on last page illustration, got %+v", pages[1])
	}
}

func TestBuildPagesNoImagesYieldsTextOnly(t *testing.T) {
	src := []book.SourcePage{
		{Page: 1, Content: "A", IsHighlight: true},
		{Page: 2, Content: "B"},
	}
	pages := reader.BuildPages(src, nil, "", "")

	if len(pages) != len(src) {
		t.Fatalf("derived %d pages, want %d", len(pages), len(src))
	}
	for i, page := range pages {
		if page.Kind != reader.PageText {
			t.Fatalf("page %d kind = %s, want text", i, page.Kind)
		}
		if page.Number != src[i].Page {
			t.Fatalf("page order broken: got %d at index %d", page.Number, i)
		}
	}
}

func TestBuildPagesCountInvariant(t *testing.T) {
	src := []book.SourcePage{
		{Page: 1, Content: "A", IsHighlight: true},
		{Page: 2, Content: "B"},
		{Page: 5, Content: "C", IsHighlight: true},
		{Page: 9, Content: "D"},
	}
	pages := reader.BuildPages(src, nil, "H", "F")

	illustrated := 0
	textNumbers := make([]int, 0, len(src))
	for _, page := range pages {
		if page.Kind == reader.PageIllustration {
			illustrated++
		} else {
			textNumbers = append(textNumbers, page.Number)
		}
	}
	// Highlights on pages 1 and 5 plus the final image on page 9.
	if illustrated != 3 {
		t.Fatalf("illustrated count = %d, want 3", illustrated)
	}
	if len(pages) != len(src)+illustrated {
		t.Fatalf("length invariant broken: %d != %d + %d", len(pages), len(src), illustrated)
	}
	for i, number := range textNumbers {
		if number != src[i].Page {
			t.Fatalf("text page order broken at %d: %v", i, textNumbers)
		}
	}
}

func TestBuildPagesMissingNarrationDegrades(t *testing.T) {
	src := []book.SourcePage{{Page: 1, Content: "A"}}
	pages := reader.BuildPages(src, nil, "", "")
	if pages[0].Audio != "" || pages[0].IsNarratable() {
		t.Fatalf("page without narration should have no audio: %+v", pages[0])
	}
}
