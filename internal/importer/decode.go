package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

var (
	errNotObject = errors.New("not an object")
	errMissingID = errors.New("missing id")
	errDuplicate = errors.New("duplicate id")
)

// Result is a normalized snapshot plus one error per dropped entry.
type Result struct {
	Snapshot domain.Snapshot
	Skipped  []error
}

// Decode reads a storage dump. Only a document that is not a JSON object is
// an error; everything else is normalized: non-array todos or notes become
// empty, non-boolean settings become false, todos without an id, text
// or deadline are dropped, and a repeated id keeps only its first entry.
func Decode(r io.Reader) (*Result, error) {
	var raw rawDump
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding storage dump: %w", err)
	}

	res := &Result{Snapshot: domain.Snapshot{Todos: []domain.Todo{}, Notes: []domain.Note{}}}

	var todos []json.RawMessage
	if json.Unmarshal(raw.Todos, &todos) == nil {
		seen := make(map[string]bool, len(todos))
		for i, item := range todos {
			t, err := decodeTodo(item, i)
			if err == nil && seen[t.ID] {
				err = fmt.Errorf("%w %s", errDuplicate, t.ID)
			}
			if err != nil {
				res.Skipped = append(res.Skipped, fmt.Errorf("todos[%d]: %w", i, err))
				continue
			}
			seen[t.ID] = true
			res.Snapshot.Todos = append(res.Snapshot.Todos, t)
		}
	}

	var notes []json.RawMessage
	if json.Unmarshal(raw.Notes, &notes) == nil {
		seen := make(map[string]bool, len(notes))
		for i, item := range notes {
			n, err := decodeNote(item)
			if err == nil && seen[n.ID] {
				err = fmt.Errorf("%w %s", errDuplicate, n.ID)
			}
			if err != nil {
				res.Skipped = append(res.Skipped, fmt.Errorf("notes[%d]: %w", i, err))
				continue
			}
			seen[n.ID] = true
			res.Snapshot.Notes = append(res.Snapshot.Notes, n)
		}
	}

	var s rawSettings
	if json.Unmarshal(raw.Settings, &s) == nil {
		res.Snapshot.Settings = domain.Settings{
			WidgetEnabled:   asBool(s.FloatingWidgetEnabled),
			WidgetCollapsed: asBool(s.FloatingWidgetCollapsed),
		}
	}
	return res, nil
}

func decodeTodo(data json.RawMessage, index int) (domain.Todo, error) {
	var r rawTodo
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Todo{}, errNotObject
	}

	id := asID(r.ID)
	if id == "" {
		return domain.Todo{}, errMissingID
	}
	raw, _ := r.Text.(string)
	text, err := domain.NormalizeText(raw)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("todo %s: %w", id, err)
	}
	deadline, ok := asTime(r.Deadline)
	if !ok {
		return domain.Todo{}, fmt.Errorf("todo %s: missing deadline", id)
	}

	t := domain.Todo{
		ID:          id,
		Text:        text,
		Deadline:    deadline,
		Completed:   asBool(r.Completed),
		ManualOrder: asBool(r.ManualOrder),
		Order:       index,
	}
	if start, ok := asTime(r.StartAt); ok {
		t.StartAt = &start
	}
	if created, ok := asTime(r.CreatedAt); ok {
		t.CreatedAt = created
	} else if t.StartAt != nil {
		t.CreatedAt = *t.StartAt
	} else {
		t.CreatedAt = deadline
	}
	if done, ok := asTime(r.CompletedAt); ok && t.Completed {
		t.CompletedAt = &done
	}
	if n, ok := r.Order.(float64); ok && n == math.Trunc(n) {
		t.Order = int(n)
	}
	return t, nil
}

func decodeNote(data json.RawMessage) (domain.Note, error) {
	var r rawNote
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Note{}, errNotObject
	}
	id := asID(r.ID)
	if id == "" {
		return domain.Note{}, errMissingID
	}
	raw, _ := r.Text.(string)
	text, err := domain.NormalizeText(raw)
	if err != nil {
		return domain.Note{}, fmt.Errorf("note %s: %w", id, err)
	}
	created, ok := asTime(r.CreatedAt)
	if !ok {
		return domain.Note{}, fmt.Errorf("note %s: missing createdAt", id)
	}
	return domain.Note{ID: id, Text: text, CreatedAt: created}, nil
}

// asID accepts string ids and, for hand-edited dumps, integral numbers.
func asID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		if id == math.Trunc(id) {
			return fmt.Sprintf("%d", int64(id))
		}
	}
	return ""
}

func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// asTime converts epoch milliseconds. Zero, negative and non-numeric
// values count as absent, as they are falsy to the extension.
func asTime(v any) (time.Time, bool) {
	ms, ok := v.(float64)
	if !ok || ms <= 0 || math.IsInf(ms, 0) || math.IsNaN(ms) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
