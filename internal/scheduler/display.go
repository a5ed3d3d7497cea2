package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
)

// MetaLayout formats timestamps in item meta text.
const MetaLayout = "2006-01-02 15:04"

// ComputeDisplayModel turns a collection into sections and items for a
// surface. The popup todo view also runs retention cleanup and returns the
// arranged collection for the caller to persist.
func ComputeDisplayModel(req contract.DisplayRequest) contract.DisplayModel {
	if req.Surface == "" {
		req.Surface = contract.SurfacePopup
	}
	if req.View == "" {
		req.View = contract.ViewTodo
	}
	if req.Location == nil {
		req.Location = time.Local
	}

	model := contract.DisplayModel{
		Surface: req.Surface,
		View:    req.View,
		Manual:  IsManual(req.Todos),
	}

	if req.View == contract.ViewNote {
		model.Todos = req.Todos
		model.Sections = []contract.DisplaySection{noteSection(req)}
		return model
	}

	if req.Surface == contract.SurfaceWidget {
		model.Todos = req.Todos
		model.Sections = []contract.DisplaySection{widgetSection(req)}
		return model
	}

	arranged := Arrange(Cleanup(req.Todos, req.Now), req.Now)
	model.Todos = arranged
	model.Manual = IsManual(arranged)
	model.Sections = popupSections(arranged, req)
	return model
}

func widgetSection(req contract.DisplayRequest) contract.DisplaySection {
	section := contract.DisplaySection{
		ID:    contract.SectionActive,
		Title: "Active Todos",
		Empty: "No active tasks",
	}

	var open []domain.Todo
	for _, t := range req.Todos {
		if IsOpen(Classify(t, req.Now)) {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return Urgency(open[i], req.Now) > Urgency(open[j], req.Now)
	})

	policy := WidgetPolicy{}
	for _, t := range open {
		section.Items = append(section.Items, contract.DisplayItem{
			ID:         t.ID,
			Text:       t.Text,
			Status:     Classify(t, req.Now),
			ColorClass: policy.Color(t, req.Now),
			Pill:       Pill(Classify(t, req.Now)),
			MetaText:   "Target: " + formatInstant(&t.Deadline, req.Location),
			Urgency:    Urgency(t, req.Now),
		})
	}
	return section
}

func popupSections(arranged []domain.Todo, req contract.DisplayRequest) []contract.DisplaySection {
	active, upcoming, completed := Buckets(arranged, req.Now)

	activeSection := contract.DisplaySection{
		ID:    contract.SectionActive,
		Title: "Todo",
		Empty: "Nothing to do",
		Items: popupItems(active, req, true),
	}
	upcomingSection := contract.DisplaySection{
		ID:     contract.SectionUpcoming,
		Title:  "Upcoming",
		Hidden: len(upcoming) == 0,
		Items:  popupItems(upcoming, req, false),
	}
	completedSection := contract.DisplaySection{
		ID:     contract.SectionCompleted,
		Title:  "Completed",
		Hidden: !req.ShowCompleted || len(completed) == 0,
		Items:  popupItems(completed, req, false),
	}
	return []contract.DisplaySection{activeSection, upcomingSection, completedSection}
}

func popupItems(todos []domain.Todo, req contract.DisplayRequest, draggable bool) []contract.DisplayItem {
	policy := PopupPolicy{}
	items := make([]contract.DisplayItem, 0, len(todos))
	for _, t := range todos {
		status := Classify(t, req.Now)
		items = append(items, contract.DisplayItem{
			ID:         t.ID,
			Text:       t.Text,
			Status:     status,
			ColorClass: policy.Color(t, req.Now),
			Pill:       Pill(status),
			MetaText: fmt.Sprintf("Start: %s | Target: %s",
				formatInstant(t.StartAt, req.Location), formatInstant(&t.Deadline, req.Location)),
			Urgency:   PopupUrgency(t, req.Now),
			Draggable: draggable,
		})
	}
	return items
}

func noteSection(req contract.DisplayRequest) contract.DisplaySection {
	section := contract.DisplaySection{
		ID:    contract.SectionNotes,
		Title: "Notes",
		Empty: "No notes",
	}
	for _, n := range req.Notes {
		item := contract.DisplayItem{ID: n.ID, Text: n.Text}
		if req.Surface == contract.SurfacePopup {
			item.MetaText = formatInstant(&n.CreatedAt, req.Location)
		}
		section.Items = append(section.Items, item)
	}
	return section
}

func formatInstant(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.In(loc).Format(MetaLayout)
}
