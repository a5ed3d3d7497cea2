package scheduler

import (
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// minWindow floors the urgency denominator so zero or negative windows
// from malformed data cannot divide by zero.
const minWindow = time.Millisecond

// Urgency is the fraction of the todo's window already consumed: 0 at the
// reference start (StartAt, else CreatedAt), 1 at the deadline, saturating
// at 1 afterwards. It is a proportion, not an absolute time remaining.
func Urgency(t domain.Todo, now time.Time) float64 {
	start := t.ReferenceStart()
	total := t.Deadline.Sub(start)
	if total < minWindow {
		total = minWindow
	}
	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	u := float64(elapsed) / float64(total)
	if u > 1 {
		return 1
	}
	return u
}

// PopupUrgency is Urgency with completed todos pinned to 0 so they never
// compete for the top of a list.
func PopupUrgency(t domain.Todo, now time.Time) float64 {
	if t.Completed {
		return 0
	}
	return Urgency(t, now)
}
