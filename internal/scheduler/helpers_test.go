package scheduler

import (
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type todoOpt func(*domain.Todo)

func startingAt(t time.Time) todoOpt {
	return func(td *domain.Todo) { td.StartAt = &t }
}

func createdAt(t time.Time) todoOpt {
	return func(td *domain.Todo) { td.CreatedAt = t }
}

func completedAt(t time.Time) todoOpt {
	return func(td *domain.Todo) {
		td.Completed = true
		td.CompletedAt = &t
	}
}

func pinned(order int) todoOpt {
	return func(td *domain.Todo) {
		td.ManualOrder = true
		td.Order = order
	}
}

func withOrder(order int) todoOpt {
	return func(td *domain.Todo) { td.Order = order }
}

// makeTodo builds a todo created an hour before testNow.
func makeTodo(id string, deadline time.Time, opts ...todoOpt) domain.Todo {
	td := domain.Todo{
		ID:        id,
		Text:      "todo " + id,
		CreatedAt: testNow.Add(-time.Hour),
		Deadline:  deadline,
	}
	for _, opt := range opts {
		opt(&td)
	}
	return td
}

func ids(todos []domain.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}
