package contract

import (
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// Surface selects which presentation policy a display model is built for.
type Surface string

const (
	// SurfaceWidget is the compact always-on view: active todos only, widget colors.
	SurfaceWidget Surface = "widget"
	// SurfacePopup is the full editor: every bucket, popup colors, draggable active list.
	SurfacePopup Surface = "popup"
)

type ViewMode string

const (
	ViewTodo ViewMode = "todo"
	ViewNote ViewMode = "note"
)

// ParseViewMode accepts "todo"/"todos" and "note"/"notes".
func ParseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "todo", "todos":
		return ViewTodo, true
	case "note", "notes":
		return ViewNote, true
	}
	return "", false
}

type SectionID string

const (
	SectionActive    SectionID = "active"
	SectionUpcoming  SectionID = "upcoming"
	SectionCompleted SectionID = "completed"
	SectionNotes     SectionID = "notes"
)

type DisplayRequest struct {
	Todos         []domain.Todo
	Notes         []domain.Note
	Now           time.Time
	Surface       Surface
	View          ViewMode
	ShowCompleted bool
	// Location formats timestamps in metaText; nil means time.Local.
	Location *time.Location
}

type DisplayItem struct {
	ID         string
	Text       string
	Status     domain.Status
	ColorClass domain.ColorClass
	Pill       string
	MetaText   string
	Urgency    float64
	Draggable  bool
}

type DisplaySection struct {
	ID     SectionID
	Title  string
	Hidden bool
	// Empty is the placeholder text when Items is empty.
	Empty string
	Items []DisplayItem
}

// DisplayModel is everything a renderer needs; it carries no further
// business logic.
type DisplayModel struct {
	Surface  Surface
	View     ViewMode
	Sections []DisplaySection
	// Todos is the collection in display order with Order rewritten.
	// Popup callers persist it after rendering.
	Todos []domain.Todo
	// Manual reports whether the todo list is pinned to manual order.
	Manual bool
}

// Section returns the section with id, if present.
func (m DisplayModel) Section(id SectionID) (DisplaySection, bool) {
	for _, s := range m.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return DisplaySection{}, false
}

// VisibleItemCount counts items across non-hidden sections.
func (m DisplayModel) VisibleItemCount() int {
	n := 0
	for _, s := range m.Sections {
		if !s.Hidden {
			n += len(s.Items)
		}
	}
	return n
}
