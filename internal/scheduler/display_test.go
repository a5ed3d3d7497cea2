package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIDs(items []contract.DisplayItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func mixedCollection() []domain.Todo {
	return []domain.Todo{
		makeTodo("calm", testNow.Add(10*time.Hour)),
		makeTodo("late", testNow.Add(-time.Minute)),
		makeTodo("soon", testNow.Add(5*time.Hour), startingAt(testNow.Add(time.Hour))),
		makeTodo("done", testNow.Add(time.Hour), completedAt(testNow.Add(-time.Hour))),
		makeTodo("stale", testNow.Add(time.Hour), completedAt(testNow.Add(-8*24*time.Hour))),
	}
}

func TestComputeDisplayModel_Popup(t *testing.T) {
	model := ComputeDisplayModel(contract.DisplayRequest{
		Todos:    mixedCollection(),
		Now:      testNow,
		Surface:  contract.SurfacePopup,
		View:     contract.ViewTodo,
		Location: time.UTC,
	})

	require.Len(t, model.Sections, 3)
	active, ok := model.Section(contract.SectionActive)
	require.True(t, ok)
	assert.Equal(t, []string{"late", "calm"}, itemIDs(active.Items))
	assert.True(t, active.Items[0].Draggable)
	assert.Equal(t, domain.ColorRed, active.Items[0].ColorClass)
	assert.Equal(t, "Overdue", active.Items[0].Pill)
	assert.Equal(t, "Start: N/A | Target: 2025-06-15 11:59", active.Items[0].MetaText)

	upcoming, _ := model.Section(contract.SectionUpcoming)
	assert.False(t, upcoming.Hidden)
	require.Len(t, upcoming.Items, 1)
	assert.Equal(t, domain.ColorBlue, upcoming.Items[0].ColorClass)
	assert.False(t, upcoming.Items[0].Draggable)
	assert.Equal(t, "Start: 2025-06-15 13:00 | Target: 2025-06-15 17:00", upcoming.Items[0].MetaText)

	completed, _ := model.Section(contract.SectionCompleted)
	assert.True(t, completed.Hidden, "completed is hidden unless requested")
	assert.Equal(t, []string{"done"}, itemIDs(completed.Items), "stale completed todo is cleaned up")

	assert.Equal(t, []string{"late", "calm", "soon", "done"}, ids(model.Todos))
	for i, td := range model.Todos {
		assert.Equal(t, i, td.Order)
	}
	assert.False(t, model.Manual)
}

func TestComputeDisplayModel_PopupShowCompleted(t *testing.T) {
	model := ComputeDisplayModel(contract.DisplayRequest{
		Todos:         mixedCollection(),
		Now:           testNow,
		ShowCompleted: true,
	})

	assert.Equal(t, contract.SurfacePopup, model.Surface, "popup is the default surface")
	completed, _ := model.Section(contract.SectionCompleted)
	assert.False(t, completed.Hidden)
	assert.Equal(t, "Completed", completed.Items[0].Pill)
	assert.Equal(t, 0.0, completed.Items[0].Urgency)
}

func TestComputeDisplayModel_PopupHidesEmptyUpcoming(t *testing.T) {
	model := ComputeDisplayModel(contract.DisplayRequest{
		Todos: []domain.Todo{makeTodo("a", testNow.Add(time.Hour))},
		Now:   testNow,
	})

	upcoming, _ := model.Section(contract.SectionUpcoming)
	assert.True(t, upcoming.Hidden)
	assert.Equal(t, 1, model.VisibleItemCount())
}

func TestComputeDisplayModel_PopupManualMode(t *testing.T) {
	todos, changed := Reorder(mixedCollection(), testNow, "calm", "late")
	require.True(t, changed)

	model := ComputeDisplayModel(contract.DisplayRequest{Todos: todos, Now: testNow})

	active, _ := model.Section(contract.SectionActive)
	assert.Equal(t, []string{"calm", "late"}, itemIDs(active.Items))
	assert.True(t, model.Manual)
}

func TestComputeDisplayModel_Widget(t *testing.T) {
	todos, _ := Reorder(mixedCollection(), testNow, "calm", "late")

	model := ComputeDisplayModel(contract.DisplayRequest{
		Todos:   todos,
		Now:     testNow,
		Surface: contract.SurfaceWidget,
		View:    contract.ViewTodo,
	})

	require.Len(t, model.Sections, 1)
	section := model.Sections[0]
	assert.Equal(t, "Active Todos", section.Title)
	assert.Equal(t, []string{"late", "calm"}, itemIDs(section.Items), "widget sorts by urgency even in manual mode")
	assert.Equal(t, domain.ColorRed, section.Items[0].ColorClass)
	assert.Equal(t, domain.ColorGreen, section.Items[1].ColorClass)
	assert.Equal(t, todos, model.Todos, "widget never rewrites the collection")
}

func TestComputeDisplayModel_WidgetEmpty(t *testing.T) {
	model := ComputeDisplayModel(contract.DisplayRequest{
		Todos:   []domain.Todo{makeTodo("soon", testNow.Add(5*time.Hour), startingAt(testNow.Add(time.Hour)))},
		Now:     testNow,
		Surface: contract.SurfaceWidget,
	})

	assert.Empty(t, model.Sections[0].Items)
	assert.Equal(t, "No active tasks", model.Sections[0].Empty)
}

func TestComputeDisplayModel_Notes(t *testing.T) {
	notes := []domain.Note{
		{ID: "n1", Text: "buy milk", CreatedAt: testNow},
		{ID: "n2", Text: "gate code 1234", CreatedAt: testNow.Add(time.Minute)},
	}

	popup := ComputeDisplayModel(contract.DisplayRequest{
		Notes: notes, Now: testNow, View: contract.ViewNote, Location: time.UTC,
	})
	require.Len(t, popup.Sections, 1)
	assert.Equal(t, []string{"n1", "n2"}, itemIDs(popup.Sections[0].Items))
	assert.Equal(t, "2025-06-15 12:00", popup.Sections[0].Items[0].MetaText)

	widget := ComputeDisplayModel(contract.DisplayRequest{
		Now: testNow, View: contract.ViewNote, Surface: contract.SurfaceWidget,
	})
	assert.Empty(t, widget.Sections[0].Items)
	assert.Equal(t, "No notes", widget.Sections[0].Empty)
}
