package scheduler

import (
	"time"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
)

const (
	warnThreshold  = 0.5
	alertThreshold = 0.8
)

// ColorPolicy maps a todo to the color band a surface paints it with.
type ColorPolicy interface {
	Color(t domain.Todo, now time.Time) domain.ColorClass
}

// WidgetPolicy colors the compact widget, which only ever shows
// active and overdue todos.
type WidgetPolicy struct{}

func (WidgetPolicy) Color(t domain.Todo, now time.Time) domain.ColorClass {
	if now.After(t.Deadline) {
		return domain.ColorRed
	}
	u := Urgency(t, now)
	switch {
	case u >= alertThreshold:
		return domain.ColorOrange
	case u >= warnThreshold:
		return domain.ColorYellow
	default:
		return domain.ColorGreen
	}
}

// PopupPolicy colors the full editor: red when overdue, blue when
// upcoming, otherwise banded by urgency.
type PopupPolicy struct{}

func (PopupPolicy) Color(t domain.Todo, now time.Time) domain.ColorClass {
	switch Classify(t, now) {
	case domain.StatusOverdue:
		return domain.ColorRed
	case domain.StatusUpcoming:
		return domain.ColorBlue
	}
	u := PopupUrgency(t, now)
	switch {
	case u < warnThreshold:
		return domain.ColorGreen
	case u < alertThreshold:
		return domain.ColorYellow
	default:
		return domain.ColorOrange
	}
}

// PolicyFor returns the color policy of a surface.
func PolicyFor(s contract.Surface) ColorPolicy {
	if s == contract.SurfaceWidget {
		return WidgetPolicy{}
	}
	return PopupPolicy{}
}
