package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// ToDump converts a snapshot to the extension's storage shape.
func ToDump(snap domain.Snapshot) Dump {
	d := Dump{
		Todos: make([]TodoRecord, 0, len(snap.Todos)),
		Notes: make([]NoteRecord, 0, len(snap.Notes)),
		Settings: SettingsRecord{
			FloatingWidgetEnabled:   snap.Settings.WidgetEnabled,
			FloatingWidgetCollapsed: snap.Settings.WidgetCollapsed,
		},
	}
	for _, t := range snap.Todos {
		d.Todos = append(d.Todos, TodoRecord{
			ID:          t.ID,
			Text:        t.Text,
			CreatedAt:   t.CreatedAt.UnixMilli(),
			StartAt:     millisOrNil(t.StartAt),
			Deadline:    t.Deadline.UnixMilli(),
			Order:       t.Order,
			Completed:   t.Completed,
			CompletedAt: millisOrNil(t.CompletedAt),
			ManualOrder: t.ManualOrder,
		})
	}
	for _, n := range snap.Notes {
		d.Notes = append(d.Notes, NoteRecord{ID: n.ID, Text: n.Text, CreatedAt: n.CreatedAt.UnixMilli()})
	}
	return d
}

func millisOrNil(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// Encode writes snap as an indented storage dump.
func Encode(w io.Writer, snap domain.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDump(snap)); err != nil {
		return fmt.Errorf("encoding storage dump: %w", err)
	}
	return nil
}
