package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// IsManual reports whether any todo is pinned, which puts the whole
// collection in manual mode.
func IsManual(todos []domain.Todo) bool {
	for _, t := range todos {
		if t.ManualOrder {
			return true
		}
	}
	return false
}

// Buckets splits todos by status into the active list (active and overdue),
// upcoming and completed, preserving input order within each.
func Buckets(todos []domain.Todo, now time.Time) (active, upcoming, completed []domain.Todo) {
	for _, t := range todos {
		switch Classify(t, now) {
		case domain.StatusCompleted:
			completed = append(completed, t)
		case domain.StatusUpcoming:
			upcoming = append(upcoming, t)
		default:
			active = append(active, t)
		}
	}
	return active, upcoming, completed
}

// AutoSort orders a copy of todos by the automatic rules and rewrites each
// Order to its position, so a later switch to manual mode starts from the
// order the user saw:
// 1. Active list: overdue first, then urgency descending
// 2. Upcoming: earliest StartAt (or Deadline) first
// 3. Completed last, in input order
func AutoSort(todos []domain.Todo, now time.Time) []domain.Todo {
	active, upcoming, completed := Buckets(domain.CloneTodos(todos), now)

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		overdueA := Classify(a, now) == domain.StatusOverdue
		overdueB := Classify(b, now) == domain.StatusOverdue
		if overdueA != overdueB {
			return overdueA
		}
		return PopupUrgency(a, now) > PopupUrgency(b, now)
	})

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcomingKey(upcoming[i]).Before(upcomingKey(upcoming[j]))
	})

	ordered := make([]domain.Todo, 0, len(todos))
	ordered = append(ordered, active...)
	ordered = append(ordered, upcoming...)
	ordered = append(ordered, completed...)
	for i := range ordered {
		ordered[i].Order = i
	}
	return ordered
}

// Arrange returns todos in display order: ascending Order when the
// collection is in manual mode, AutoSort otherwise.
func Arrange(todos []domain.Todo, now time.Time) []domain.Todo {
	if !IsManual(todos) {
		return AutoSort(todos, now)
	}
	out := domain.CloneTodos(todos)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func upcomingKey(t domain.Todo) time.Time {
	if t.StartAt != nil {
		return *t.StartAt
	}
	return t.Deadline
}
