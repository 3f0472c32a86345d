package reader

// LayoutMode selects how many reader pages one spread shows.
type LayoutMode string

const (
	// LayoutSingle shows one page per view, used on narrow viewports.
	LayoutSingle LayoutMode = "single"
	// LayoutSpread shows a two-page spread.
	LayoutSpread LayoutMode = "spread"
)

// AdvanceStep returns how far the spread start index moves per navigation.
func (m LayoutMode) AdvanceStep() int {
	if m == LayoutSingle {
		return 1
	}
	return 2
}

// LayoutForColumns derives the layout mode from a viewport width. Widths at or
// above the breakpoint get the two-page spread; anything narrower (or an
// unknown width) collapses to a single column.
func LayoutForColumns(columns, breakpoint int) LayoutMode {
	if columns >= breakpoint {
		return LayoutSpread
	}
	return LayoutSingle
}
