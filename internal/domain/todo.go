package domain

import "time"

type Todo struct {
	ID          string
	Text        string
	CreatedAt   time.Time
	StartAt     *time.Time
	Deadline    time.Time
	Completed   bool
	CompletedAt *time.Time

	// Order is only meaningful while at least one todo has ManualOrder set.
	Order       int
	ManualOrder bool
}

// NewTodo builds a fresh, open todo from a resolved schedule.
func NewTodo(id string, sched Schedule, now time.Time, order int) Todo {
	return Todo{
		ID:        id,
		Text:      sched.Text,
		CreatedAt: now,
		StartAt:   sched.StartAt,
		Deadline:  sched.Deadline,
		Order:     order,
	}
}

// ApplySchedule replaces the editable fields. CreatedAt, completion and
// ordering are left alone.
func (t *Todo) ApplySchedule(sched Schedule) {
	t.Text = sched.Text
	t.StartAt = sched.StartAt
	t.Deadline = sched.Deadline
}

// SetCompleted flips completion, stamping CompletedAt on completion and
// clearing it on reopen.
func (t *Todo) SetCompleted(done bool, now time.Time) {
	t.Completed = done
	if done {
		at := now
		t.CompletedAt = &at
		return
	}
	t.CompletedAt = nil
}

// ReferenceStart is the instant the urgency window opens.
func (t Todo) ReferenceStart() time.Time {
	if t.StartAt != nil {
		return *t.StartAt
	}
	return t.CreatedAt
}

type Note struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

type Settings struct {
	WidgetEnabled   bool
	WidgetCollapsed bool
}

// Snapshot is the whole shared collection, read and written as one unit.
type Snapshot struct {
	Todos    []Todo
	Notes    []Note
	Settings Settings
}

// Clone returns a deep copy so callers can mutate freely.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Settings: s.Settings}
	out.Todos = CloneTodos(s.Todos)
	if s.Notes != nil {
		out.Notes = make([]Note, len(s.Notes))
		copy(out.Notes, s.Notes)
	}
	return out
}

// CloneTodos copies todos including their pointer-typed timestamps.
func CloneTodos(todos []Todo) []Todo {
	if todos == nil {
		return nil
	}
	out := make([]Todo, len(todos))
	for i, t := range todos {
		out[i] = t
		if t.StartAt != nil {
			v := *t.StartAt
			out[i].StartAt = &v
		}
		if t.CompletedAt != nil {
			v := *t.CompletedAt
			out[i].CompletedAt = &v
		}
	}
	return out
}

// FindTodo returns the index of the todo with id, or -1.
func FindTodo(todos []Todo, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

// FindNote returns the index of the note with id, or -1.
func FindNote(notes []Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}
