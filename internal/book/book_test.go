package book_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storyreel/internal/book"
)

func TestParseValidBook(t *testing.T) {
	data := []byte(`{
		"title": "The Little Boat",
		"authorName": "Mia",
		"pages": [
			{"page": 1, "content": "Once upon a tide.", "isHighlight": false},
			{"page": 3, "content": "The boat sailed on.", "isHighlight": true}
		],
		"highlightImage": "https://example.test/highlight.png",
		"narrations": [{"page": 1, "audio": "narration-1.mp3"}]
	}`)

	b, err := book.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if b.Title != "The Little Boat" || len(b.Pages) != 2 {
		t.Fatalf("unexpected book: %+v", b)
	}
	byPage := b.NarrationsByPage()
	if byPage[1] != "narration-1.mp3" {
		t.Fatalf("narration lookup = %q", byPage[1])
	}
	if _, ok := byPage[3]; ok {
		t.Fatal("page 3 should have no narration")
	}
}

func TestValidateRejectsBadBooks(t *testing.T) {
	cases := []struct {
		name string
		book book.Book
	}{
		{"empty title", book.Book{Pages: []book.SourcePage{{Page: 1, Content: "x"}}}},
		{"no pages", book.Book{Title: "T"}},
		{"duplicate page numbers", book.Book{Title: "T", Pages: []book.SourcePage{
			{Page: 1, Content: "a"}, {Page: 1, Content: "b"},
		}}},
		{"decreasing page numbers", book.Book{Title: "T", Pages: []book.SourcePage{
			{Page: 2, Content: "a"}, {Page: 1, Content: "b"},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.book.Validate()
			if !errors.Is(err, book.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestNarrationsByPageLastWriterWins(t *testing.T) {
	b := book.Book{
		Title: "T",
		Pages: []book.SourcePage{{Page: 1, Content: "a"}},
		Narrations: []book.Narration{
			{Page: 1, Audio: "old.mp3"},
			{Page: 1, Audio: "new.mp3"},
			{Page: 2, Audio: "   "},
		},
	}
	byPage := b.NarrationsByPage()
	if byPage[1] != "new.mp3" {
		t.Fatalf("expected last narration to win, got %q", byPage[1])
	}
	if _, ok := byPage[2]; ok {
		t.Fatal("blank narration should be dropped")
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	content := `{"title":"T","pages":[{"page":1,"content":"hello"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write book: %v", err)
	}
	b, err := book.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Pages[0].Content != "hello" {
		t.Fatalf("unexpected content: %q", b.Pages[0].Content)
	}

	if _, err := book.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
