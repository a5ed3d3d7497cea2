package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestClassStyle(t *testing.T) {
	tests := []struct {
		class domain.ColorClass
		want  lipgloss.TerminalColor
	}{
		{domain.ColorGreen, ColorGreen},
		{domain.ColorYellow, ColorYellow},
		{domain.ColorOrange, ColorOrange},
		{domain.ColorRed, ColorRed},
		{domain.ColorBlue, ColorBlue},
		{"", ColorFg},
	}
	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassStyle(tt.class).GetForeground())
		})
	}
}

func TestPill(t *testing.T) {
	assert.Contains(t, Pill(domain.StatusOverdue, "Overdue", domain.ColorRed), "● Overdue")
	assert.Contains(t, Pill(domain.StatusUpcoming, "Upcoming", domain.ColorBlue), "○ Upcoming")
	assert.Contains(t, Pill(domain.StatusCompleted, "Completed", domain.ColorGreen), "✔ Completed")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
	got := Truncate("a fairly long todo title", 10)
	assert.Equal(t, 10, lipgloss.Width(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "0f8fad5b", TruncID("0f8fad5b-d9cb-469f-a165-70867728950e"))
	assert.Equal(t, "abc", TruncID("abc"))
}

func TestUrgencyBar(t *testing.T) {
	assert.Equal(t, "░░░░", UrgencyBar(0, 4))
	assert.Equal(t, "██░░", UrgencyBar(0.5, 4))
	assert.Equal(t, "████", UrgencyBar(1.7, 4))
	assert.Equal(t, "", UrgencyBar(0.5, 0))
}

func TestRenderTableWidth_AlignsAndTruncates(t *testing.T) {
	out := RenderTableWidth(
		[]string{"ID", "TODO"},
		[][]string{{"a", "pay rent"}, {"bb", "an extremely long todo title"}},
		12,
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[1], "──")
	assert.Contains(t, lines[2], "pay rent")
	assert.Contains(t, lines[3], "an extremel…")
	assert.Equal(t, strings.Index(lines[2], "pay"), strings.Index(lines[3], "an "), "columns align")
}

func popupModel() contract.DisplayModel {
	return contract.DisplayModel{
		Surface: contract.SurfacePopup,
		View:    contract.ViewTodo,
		Sections: []contract.DisplaySection{
			{ID: contract.SectionActive, Title: "Todo", Empty: "Nothing to do", Items: []contract.DisplayItem{
				{ID: "0f8fad5b-d9cb", Text: "pay rent", Status: domain.StatusOverdue, Pill: "Overdue",
					ColorClass: domain.ColorRed, MetaText: "Start: N/A | Target: 2025-06-15 09:00"},
			}},
			{ID: contract.SectionUpcoming, Title: "Upcoming", Hidden: true},
			{ID: contract.SectionCompleted, Title: "Completed", Hidden: true, Items: []contract.DisplayItem{
				{ID: "hidden-item", Text: "secret"},
			}},
		},
	}
}

func TestFormatBoard(t *testing.T) {
	out := FormatBoard(popupModel(), 0)
	assert.Contains(t, out, "TODO")
	assert.Contains(t, out, "0f8fad5b")
	assert.Contains(t, out, "● Overdue")
	assert.Contains(t, out, "pay rent")
	assert.Contains(t, out, "Start: N/A | Target: 2025-06-15 09:00")
	assert.NotContains(t, out, "UPCOMING")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "manual order")
}

func TestFormatBoard_EmptyAndManual(t *testing.T) {
	model := contract.DisplayModel{
		View:   contract.ViewTodo,
		Manual: true,
		Sections: []contract.DisplaySection{
			{ID: contract.SectionActive, Title: "Todo", Empty: "Nothing to do"},
		},
	}
	out := FormatBoard(model, 0)
	assert.Contains(t, out, "Nothing to do")
	assert.Contains(t, out, "manual order")
}

func widgetModel(items ...contract.DisplayItem) contract.DisplayModel {
	return contract.DisplayModel{
		Surface: contract.SurfaceWidget,
		View:    contract.ViewTodo,
		Sections: []contract.DisplaySection{
			{ID: contract.SectionActive, Title: "Active Todos", Empty: "No active tasks", Items: items},
		},
	}
}

func TestFormatWidget(t *testing.T) {
	model := widgetModel(
		contract.DisplayItem{ID: "a", Text: "ship the release notes today", ColorClass: domain.ColorOrange, MetaText: "Target: 2025-06-15 13:00"},
		contract.DisplayItem{ID: "b", Text: "groceries", ColorClass: domain.ColorGreen, MetaText: "Target: 2025-06-20 23:59"},
	)

	out := FormatWidget(model, domain.Settings{WidgetEnabled: true}, 0)
	assert.Contains(t, out, "Active Todos")
	assert.Contains(t, out, "● ship the release notes today")
	assert.Contains(t, out, "Target: 2025-06-20 23:59")

	narrow := FormatWidget(model, domain.Settings{WidgetEnabled: true}, 12)
	assert.Contains(t, narrow, "ship the …")
}

func TestFormatWidget_Settings(t *testing.T) {
	model := widgetModel(contract.DisplayItem{ID: "a", Text: "x", ColorClass: domain.ColorRed})

	assert.Contains(t, FormatWidget(model, domain.Settings{}, 0), WidgetDisabledHint)
	assert.Contains(t, FormatWidget(model, domain.Settings{WidgetEnabled: true, WidgetCollapsed: true}, 0), "nudge · 1 active")

	empty := FormatWidget(widgetModel(), domain.Settings{WidgetEnabled: true}, 0)
	assert.Contains(t, empty, "No active tasks")
}
