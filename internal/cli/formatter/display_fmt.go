package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
)

// FormatBoard renders a popup display model as one table per visible
// section.
func FormatBoard(model contract.DisplayModel, maxCell int) string {
	var b strings.Builder
	for _, section := range model.Sections {
		if section.Hidden {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(section.Title))
		b.WriteString("\n")
		if len(section.Items) == 0 {
			b.WriteString(Dim(section.Empty))
			b.WriteString("\n")
			continue
		}
		b.WriteString(sectionTable(section, maxCell))
	}
	if model.View == contract.ViewTodo && model.Manual {
		b.WriteString("\n")
		b.WriteString(Dim("manual order (nudge autosort to reset)"))
		b.WriteString("\n")
	}
	return b.String()
}

func sectionTable(section contract.DisplaySection, maxCell int) string {
	if section.ID == contract.SectionNotes {
		rows := make([][]string, 0, len(section.Items))
		for _, item := range section.Items {
			rows = append(rows, []string{Dim(TruncID(item.ID)), item.Text, Dim(item.MetaText)})
		}
		return RenderTableWidth([]string{"ID", "NOTE", "CREATED"}, rows, maxCell)
	}

	rows := make([][]string, 0, len(section.Items))
	for _, item := range section.Items {
		text := item.Text
		if item.Status == domain.StatusCompleted {
			text = StyleDim.Strikethrough(true).Render(text)
		}
		rows = append(rows, []string{
			Dim(TruncID(item.ID)),
			Pill(item.Status, item.Pill, item.ColorClass),
			text,
			Dim(item.MetaText),
		})
	}
	return RenderTableWidth([]string{"ID", "STATUS", "TODO", "SCHEDULE"}, rows, maxCell)
}

// WidgetDisabledHint is printed instead of the widget when it is turned off.
const WidgetDisabledHint = "widget disabled (nudge settings --widget on)"

// FormatWidget renders the compact widget. A collapsed widget is a single
// badge line; width truncates each line.
func FormatWidget(model contract.DisplayModel, settings domain.Settings, width int) string {
	if !settings.WidgetEnabled {
		return Dim(WidgetDisabledHint)
	}
	section := contract.DisplaySection{}
	if len(model.Sections) > 0 {
		section = model.Sections[0]
	}

	if settings.WidgetCollapsed {
		return collapsedBadge(model.View, section)
	}

	var lines []string
	if len(section.Items) == 0 {
		lines = append(lines, Dim(section.Empty))
	}
	for _, item := range section.Items {
		text := Truncate(item.Text, width-2)
		if model.View == contract.ViewNote {
			lines = append(lines, "• "+text)
			continue
		}
		lines = append(lines, ClassStyle(item.ColorClass).Render("●")+" "+text)
		lines = append(lines, "  "+Dim(Truncate(item.MetaText, width-2)))
	}
	return RenderBox(section.Title, strings.Join(lines, "\n"))
}

func collapsedBadge(view contract.ViewMode, section contract.DisplaySection) string {
	if view == contract.ViewNote {
		return StyleBlue.Render("●") + fmt.Sprintf(" nudge · %d notes", len(section.Items))
	}
	// Items are sorted by urgency, so the first one sets the badge color.
	style := StyleGreen
	if len(section.Items) > 0 {
		style = ClassStyle(section.Items[0].ColorClass)
	}
	return style.Render("●") + fmt.Sprintf(" nudge · %d active", len(section.Items))
}
