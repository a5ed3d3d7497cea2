package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(1).
		PaddingRight(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(title) + "\n" + content)
	}
	return boxStyle.Render(content)
}

// Truncate shortens s to width visible columns with an ellipsis. Width <= 0
// leaves s alone.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// TruncID returns the first 8 characters of an ID, which is also the
// shortest prefix the CLI prints for selecting items.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// UrgencyBar renders urgency in [0,1] as a fixed-width bar.
func UrgencyBar(u float64, width int) string {
	if width <= 0 {
		return ""
	}
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	filled := int(u*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
