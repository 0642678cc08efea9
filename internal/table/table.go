// Package table renders bordered text tables for terminals.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render writes rows as a bordered table. The first row is the header and is
// separated from the body by a rule; a non-empty title is embedded in the top
// border, widening the last column when the table is narrower than the title.
func Render(w io.Writer, title string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	widths := fitTitle(title, columnWidths(rows))

	var builder strings.Builder

	builder.WriteString(topBorder(title, widths))

	for i, row := range rows {
		builder.WriteString(line(row, widths))

		if i == 0 && len(rows) > 1 {
			builder.WriteString(border("├", "┼", "┤", widths))
		}
	}

	builder.WriteString(border("└", "┴", "┘", widths))

	_, err := io.WriteString(w, builder.String())
	if err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	return nil
}

func columnWidths(rows [][]string) []int {
	var widths []int

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}

			widths[i] = max(widths[i], runewidth.StringWidth(clean(cell)))
		}
	}

	return widths
}

func fitTitle(title string, widths []int) []int {
	inner := len(widths) - 1
	for _, width := range widths {
		inner += width + 2
	}

	need := runewidth.StringWidth(clean(title))
	if need > inner {
		widths[len(widths)-1] += need - inner
	}

	return widths
}

func segments(widths []int) []string {
	parts := make([]string, 0, len(widths))
	for _, width := range widths {
		parts = append(parts, strings.Repeat("─", width+2))
	}

	return parts
}

func border(left, middle, right string, widths []int) string {
	return left + strings.Join(segments(widths), middle) + right + "\n"
}

func topBorder(title string, widths []int) string {
	inner := []rune(strings.Join(segments(widths), "┬"))
	title = clean(title)
	titleWidth := runewidth.StringWidth(title)

	if title == "" {
		return "┌" + string(inner) + "┐\n"
	}

	return "┌" + title + string(inner[titleWidth:]) + "┐\n"
}

func line(row []string, widths []int) string {
	cells := make([]string, 0, len(widths))

	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = clean(row[i])
		}

		cells = append(cells, " "+runewidth.FillRight(cell, width)+" ")
	}

	return "│" + strings.Join(cells, "│") + "│\n"
}

func clean(cell string) string {
	return strings.ReplaceAll(cell, "\n", " ")
}
