package scheduler

import (
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// RetentionWindow is how long a completed todo survives after completion.
const RetentionWindow = 7 * 24 * time.Hour

// Cleanup drops completed todos whose CompletedAt is older than
// RetentionWindow before now. Completed todos without a CompletedAt are kept.
func Cleanup(todos []domain.Todo, now time.Time) []domain.Todo {
	cutoff := now.Add(-RetentionWindow)
	out := make([]domain.Todo, 0, len(todos))
	for _, t := range todos {
		if Expired(t, cutoff) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Expired reports whether t is a completed todo finished before cutoff.
func Expired(t domain.Todo, cutoff time.Time) bool {
	return t.Completed && t.CompletedAt != nil && t.CompletedAt.Before(cutoff)
}
