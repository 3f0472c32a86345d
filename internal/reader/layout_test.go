package reader_test

import (
	"testing"

	"storyreel/internal/reader"
)

func TestLayoutForColumns(t *testing.T) {
	cases := []struct {
		columns    int
		breakpoint int
		want       reader.LayoutMode
	}{
		{120, 90, reader.LayoutSpread},
		{90, 90, reader.LayoutSpread},
		{89, 90, reader.LayoutSingle},
		{0, 90, reader.LayoutSingle},
		{-1, 90, reader.LayoutSingle},
	}
	for _, tc := range cases {
		if got := reader.LayoutForColumns(tc.columns, tc.breakpoint); got != tc.want {
			t.Fatalf("LayoutForColumns(%d, %d) = %s, want %s", tc.columns, tc.breakpoint, got, tc.want)
		}
	}
}

func TestAdvanceStep(t *testing.T) {
	if got := reader.LayoutSingle.AdvanceStep(); got != 1 {
		t.Fatalf("single step = %d, want 1", got)
	}
	if got := reader.LayoutSpread.AdvanceStep(); got != 2 {
		t.Fatalf("spread step = %d, want 2", got)
	}
}
