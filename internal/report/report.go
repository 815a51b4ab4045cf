// Package report renders aligned plain-text tables and lists for operator
// output.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render formats a header and rows as an aligned text table. Column widths
// are computed with display width so wide runes line up. Rows shorter than
// the header are padded with empty cells.
func Render(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))

	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c)
	}

	for _, row := range rows {
		for i := 0; i < len(columns) && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	writeRow := func(cells []string) {
		for i := range columns {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}

			if i > 0 {
				b.WriteString("  ")
			}

			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
		}

		b.WriteString("\n")
	}

	writeRow(columns)

	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}

		b.WriteString(strings.Repeat("-", w))
	}

	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}

// List formats a titled bullet list, the shape used for validation reports.
func List(title string, items []string) string {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n")

	for _, item := range items {
		b.WriteString(" - ")
		b.WriteString(item)
		b.WriteString("\n")
	}

	return b.String()
}
