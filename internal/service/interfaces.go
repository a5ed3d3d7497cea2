package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/importer"
)

// BoardService runs every use case against the shared store. Each call loads
// the whole snapshot, applies one change and writes the snapshot back.
type BoardService interface {
	// Load normalizes the stored collection, drops expired completed todos
	// and persists the result.
	Load(ctx context.Context) (domain.Snapshot, error)
	Display(ctx context.Context, opts DisplayOptions) (*BoardView, error)

	AddTodo(ctx context.Context, in domain.ScheduleInput) (domain.Todo, error)
	GetTodo(ctx context.Context, id string) (domain.Todo, error)
	UpdateTodo(ctx context.Context, id string, in domain.ScheduleInput) (domain.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id string, done bool) (domain.Todo, error)
	// Reorder drops draggedID onto targetID in the active list. It reports
	// false, without writing, when the drop is a no-op.
	Reorder(ctx context.Context, draggedID, targetID string) (bool, error)
	AutoSort(ctx context.Context) error

	AddNote(ctx context.Context, text string) (domain.Note, error)
	GetNote(ctx context.Context, id string) (domain.Note, error)
	UpdateNote(ctx context.Context, id, text string) (domain.Note, error)
	DeleteNote(ctx context.Context, id string) error

	UpdateSettings(ctx context.Context, patch SettingsPatch) (domain.Settings, error)

	Import(ctx context.Context, r io.Reader) (*importer.Result, error)
	Export(ctx context.Context, w io.Writer) error

	// ResolveTodoID and ResolveNoteID expand a unique id prefix.
	ResolveTodoID(ctx context.Context, prefix string) (string, error)
	ResolveNoteID(ctx context.Context, prefix string) (string, error)
}

type DisplayOptions struct {
	Surface       contract.Surface
	View          contract.ViewMode
	ShowCompleted bool
}

// BoardView is a display model plus the settings the widget honors.
type BoardView struct {
	Model    contract.DisplayModel
	Settings domain.Settings
	Now      time.Time
}

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	WidgetEnabled   *bool
	WidgetCollapsed *bool
}

// Clock returns the current instant. Its location is used to resolve
// dates typed without a zone.
type Clock func() time.Time
