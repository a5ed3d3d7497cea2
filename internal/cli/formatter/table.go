package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// colGap separates table columns.
const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell, ignoring ANSI sequences.
func RenderTable(headers []string, rows [][]string) string {
	return RenderTableWidth(headers, rows, 0)
}

// RenderTableWidth is RenderTable with every cell truncated to maxCell
// visible columns. maxCell <= 0 disables truncation.
func RenderTableWidth(headers []string, rows [][]string, maxCell int) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	fit := func(s string) string {
		if maxCell > 0 && lipgloss.Width(s) > maxCell {
			return truncate.StringWithTail(s, uint(maxCell), "…")
		}
		return s
	}

	cells := make([][]string, len(rows))
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for r, row := range rows {
		cells[r] = make([]string, cols)
		for i := 0; i < cols; i++ {
			if i < len(row) {
				cells[r][i] = fit(row[i])
			}
			if w := lipgloss.Width(cells[r][i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string, style func(string) string) {
		for i, cell := range row {
			b.WriteString(style(cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range cells {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
