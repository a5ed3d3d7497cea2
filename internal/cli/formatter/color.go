package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ClassStyle maps a color class from the engine to a terminal style.
func ClassStyle(c domain.ColorClass) lipgloss.Style {
	switch c {
	case domain.ColorGreen:
		return StyleGreen
	case domain.ColorYellow:
		return StyleYellow
	case domain.ColorOrange:
		return StyleOrange
	case domain.ColorRed:
		return StyleRed
	case domain.ColorBlue:
		return StyleBlue
	default:
		return StyleFg
	}
}

// Pill renders a status label such as "● Overdue" in the item's color.
func Pill(status domain.Status, label string, c domain.ColorClass) string {
	glyph := "●"
	switch status {
	case domain.StatusUpcoming:
		glyph = "○"
	case domain.StatusCompleted:
		glyph = "✔"
		return StyleDim.Render(glyph + " " + label)
	}
	return ClassStyle(c).Render(glyph + " " + label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success prefixes msg with a green check mark.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}
