package testutil

import (
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/google/uuid"
)

// Fixtures are anchored to a fixed instant so urgency and status are
// reproducible. Pass Now to services under test.
var Now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// Todo options
type TodoOption func(*domain.Todo)

func WithID(id string) TodoOption {
	return func(t *domain.Todo) {
		t.ID = id
	}
}

func WithDeadline(d time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.Deadline = d
	}
}

func WithStart(s time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.StartAt = &s
	}
}

func WithCreatedAt(c time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.CreatedAt = c
	}
}

func CompletedAt(at time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.SetCompleted(true, at)
	}
}

func WithOrder(order int) TodoOption {
	return func(t *domain.Todo) {
		t.Order = order
	}
}

func Pinned() TodoOption {
	return func(t *domain.Todo) {
		t.ManualOrder = true
	}
}

// NewTestTodo returns an active todo created an hour before Now and due a
// day after it.
func NewTestTodo(text string, opts ...TodoOption) domain.Todo {
	t := domain.Todo{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: Now.Add(-time.Hour),
		Deadline:  Now.Add(24 * time.Hour),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func NewTestNote(text string) domain.Note {
	return domain.Note{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: Now.Add(-time.Hour),
	}
}
