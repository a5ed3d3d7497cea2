package scheduler

import (
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// Classify returns the temporal state of a todo. Rules are evaluated in
// order and the first match wins:
// 1. completed
// 2. upcoming while now is before StartAt
// 3. overdue once now is after Deadline
// 4. active
func Classify(t domain.Todo, now time.Time) domain.Status {
	switch {
	case t.Completed:
		return domain.StatusCompleted
	case t.StartAt != nil && now.Before(*t.StartAt):
		return domain.StatusUpcoming
	case now.After(t.Deadline):
		return domain.StatusOverdue
	default:
		return domain.StatusActive
	}
}

// IsOpen reports whether the status belongs in the active list.
func IsOpen(s domain.Status) bool {
	return s == domain.StatusActive || s == domain.StatusOverdue
}

// Pill returns the label shown next to a todo.
func Pill(s domain.Status) string {
	switch s {
	case domain.StatusOverdue:
		return "Overdue"
	case domain.StatusUpcoming:
		return "Upcoming"
	case domain.StatusCompleted:
		return "Completed"
	default:
		return "Active"
	}
}
