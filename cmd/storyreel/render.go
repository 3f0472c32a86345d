package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"storyreel/internal/reader"
)

// renderView draws the current reader state into a printable frame sized for
// the given terminal width.
func renderView(view reader.View, columns int) string {
	if columns < 40 {
		columns = 40
	}
	var b strings.Builder

	switch view.Cover {
	case reader.CoverClosed, reader.CoverFlipping, reader.CoverReturning:
		b.WriteString(renderCover(view, columns))
	case reader.CoverOpen:
		b.WriteString(renderSpread(view, columns))
	}

	b.WriteString("\n")
	b.WriteString(renderStatus(view))
	return b.String()
}

func renderCover(view reader.View, columns int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleDouble)
	tw.SetColumnConfigs([]table.ColumnConfig{{
		Number:      1,
		Align:       text.AlignCenter,
		AlignHeader: text.AlignCenter,
		WidthMax:    columns - 6,
	}})

	tw.AppendHeader(table.Row{view.Title})
	if view.Author != "" {
		tw.AppendRow(table.Row{"by " + view.Author})
	}
	if view.CoverImage != "" {
		tw.AppendRow(table.Row{"[cover illustration]"})
	}
	tw.AppendRow(table.Row{fmt.Sprintf("%d pages", view.TotalPages)})

	switch view.Cover {
	case reader.CoverFlipping:
		tw.AppendFooter(table.Row{"opening..."})
	case reader.CoverReturning:
		tw.AppendFooter(table.Row{"closing..."})
	default:
		tw.AppendFooter(table.Row{"press -> to open"})
	}
	return tw.Render()
}

func renderSpread(view reader.View, columns int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	pageWidth := columns - 8
	if view.Layout == reader.LayoutSpread {
		pageWidth = (columns - 12) / 2
	}
	if pageWidth < 20 {
		pageWidth = 20
	}

	if view.Layout == reader.LayoutSpread {
		tw.AppendHeader(table.Row{pageLabel(view.Left), pageLabel(view.Right)})
		tw.AppendRow(table.Row{pageBody(view.Left, pageWidth), pageBody(view.Right, pageWidth)})
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, WidthMax: pageWidth, WidthMin: pageWidth},
			{Number: 2, WidthMax: pageWidth, WidthMin: pageWidth},
		})
	} else {
		tw.AppendHeader(table.Row{pageLabel(view.Left)})
		tw.AppendRow(table.Row{pageBody(view.Left, pageWidth)})
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, WidthMax: pageWidth, WidthMin: pageWidth},
		})
	}
	return tw.Render()
}

func pageLabel(page *reader.Page) string {
	if page == nil {
		return ""
	}
	switch page.Kind {
	case reader.PageIllustration:
		return fmt.Sprintf("Illustration %d", page.Number)
	default:
		label := fmt.Sprintf("Page %d", page.Number)
		if page.IsNarratable() {
			label += " *"
		}
		return label
	}
}

func pageBody(page *reader.Page, width int) string {
	if page == nil {
		return ""
	}
	if page.Kind == reader.PageIllustration {
		return "[illustration]"
	}
	return text.WrapSoft(page.Content, width)
}

func renderStatus(view reader.View) string {
	var lines []string

	if view.Turn != nil {
		direction := "forward"
		if view.Turn.Direction == reader.TurnPrevious {
			direction = "back"
		}
		lines = append(lines, fmt.Sprintf("turning %s...", direction))
	}
	if view.NarratingPage > 0 {
		lines = append(lines, fmt.Sprintf("narrating page %d", view.NarratingPage))
	}
	if view.AutoNarrating {
		lines = append(lines, "auto-narration on")
	}
	if view.AtLastSpread {
		lines = append(lines, "the end - press <- or Esc to close the book")
	}

	lines = append(lines, "keys: <- -> navigate | space narrate | a auto | Esc/q quit")
	return strings.Join(lines, "\n")
}
