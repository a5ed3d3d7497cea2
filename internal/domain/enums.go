package domain

type Status string

const (
	StatusActive    Status = "active"
	StatusUpcoming  Status = "upcoming"
	StatusOverdue   Status = "overdue"
	StatusCompleted Status = "completed"
)

// ColorClass is the visual urgency band a surface paints a todo with.
type ColorClass string

const (
	ColorGreen  ColorClass = "green"
	ColorYellow ColorClass = "yellow"
	ColorOrange ColorClass = "orange"
	ColorRed    ColorClass = "red"
	ColorBlue   ColorClass = "blue"
)

// Storage keys of the shared collection. Change events name these.
const (
	KeyTodos    = "todos"
	KeyNotes    = "notes"
	KeySettings = "settings"
)

// AllKeys lists the storage keys in canonical order.
var AllKeys = []string{KeyTodos, KeyNotes, KeySettings}
