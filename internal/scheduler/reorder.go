package scheduler

import (
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// Reorder moves draggedID to targetID's position within the displayed
// active list and pins the collection to manual order. Active todos get
// their new positions, upcoming todos follow with continuing positions
// (also pinned), completed todos come last and keep their ManualOrder flag.
//
// A drop onto itself or onto an id outside the active list changes
// nothing; the second return value is false and callers must not persist.
func Reorder(todos []domain.Todo, now time.Time, draggedID, targetID string) ([]domain.Todo, bool) {
	if draggedID == "" || draggedID == targetID {
		return todos, false
	}

	active, upcoming, completed := Buckets(Arrange(todos, now), now)

	from, to := -1, -1
	for i, t := range active {
		switch t.ID {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from == -1 || to == -1 {
		return todos, false
	}

	moved := active[from]
	active = append(active[:from], active[from+1:]...)
	active = append(active[:to], append([]domain.Todo{moved}, active[to:]...)...)

	out := make([]domain.Todo, 0, len(todos))
	for _, t := range active {
		t.ManualOrder = true
		t.Order = len(out)
		out = append(out, t)
	}
	for _, t := range upcoming {
		t.ManualOrder = true
		t.Order = len(out)
		out = append(out, t)
	}
	for _, t := range completed {
		t.Order = len(out)
		out = append(out, t)
	}
	return out, true
}

// ClearManualOrder unpins every todo, returning the collection to
// automatic sorting on the next Arrange.
func ClearManualOrder(todos []domain.Todo) []domain.Todo {
	out := domain.CloneTodos(todos)
	for i := range out {
		out[i].ManualOrder = false
	}
	return out
}
