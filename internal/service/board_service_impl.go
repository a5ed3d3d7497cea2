package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/nudge/internal/contract"
	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/importer"
	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/scheduler"
	"github.com/google/uuid"
)

type boardService struct {
	store    repository.Store
	clock    Clock
	observer UseCaseObserver
}

func NewBoardService(store repository.Store, observers ...UseCaseObserver) BoardService {
	return NewBoardServiceWithClock(store, time.Now, observers...)
}

func NewBoardServiceWithClock(store repository.Store, clock Clock, observers ...UseCaseObserver) BoardService {
	if clock == nil {
		clock = time.Now
	}
	return &boardService{
		store:    store,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *boardService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// nextOrder returns one past the highest Order in use.
func nextOrder(todos []domain.Todo) int {
	next := 0
	for _, t := range todos {
		if t.Order >= next {
			next = t.Order + 1
		}
	}
	return next
}

// load reads the snapshot and applies retention. It does not write.
func (s *boardService) load(ctx context.Context, now time.Time) (domain.Snapshot, int, error) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		return domain.Snapshot{}, 0, fmt.Errorf("loading board: %w", err)
	}
	before := len(snap.Todos)
	snap.Todos = scheduler.Cleanup(snap.Todos, now)
	return snap, before - len(snap.Todos), nil
}

func (s *boardService) save(ctx context.Context, snap domain.Snapshot) error {
	if err := s.store.Set(ctx, snap); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	return nil
}

// mutate is the load, change, write-back cycle shared by every write.
func (s *boardService) mutate(ctx context.Context, fields map[string]any, fn func(snap *domain.Snapshot, now time.Time) error) error {
	now := s.clock()
	snap, expired, err := s.load(ctx, now)
	if err != nil {
		return err
	}
	if expired > 0 {
		fields["expired"] = expired
	}
	if err := fn(&snap, now); err != nil {
		return err
	}
	fields["todo_count"] = len(snap.Todos)
	return s.save(ctx, snap)
}

func (s *boardService) Load(ctx context.Context) (snap domain.Snapshot, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "load", startedAt, fields, err) }()

	err = s.mutate(ctx, fields, func(loaded *domain.Snapshot, _ time.Time) error {
		snap = loaded.Clone()
		return nil
	})
	return snap, err
}

func (s *boardService) Display(ctx context.Context, opts DisplayOptions) (view *BoardView, err error) {
	startedAt := time.Now()
	fields := map[string]any{"surface": string(opts.Surface), "view": string(opts.View)}
	defer func() { s.observe(ctx, "display", startedAt, fields, err) }()

	now := s.clock()
	req := contract.DisplayRequest{
		Now:           now,
		Surface:       opts.Surface,
		View:          opts.View,
		ShowCompleted: opts.ShowCompleted,
		Location:      now.Location(),
	}

	// The widget only reads; the popup persists cleanup and the arranged order.
	if opts.Surface == contract.SurfaceWidget {
		snap, getErr := s.store.Get(ctx)
		if getErr != nil {
			return nil, fmt.Errorf("loading board: %w", getErr)
		}
		req.Todos, req.Notes = snap.Todos, snap.Notes
		model := scheduler.ComputeDisplayModel(req)
		fields["items"] = model.VisibleItemCount()
		return &BoardView{Model: model, Settings: snap.Settings, Now: now}, nil
	}

	var model contract.DisplayModel
	var settings domain.Settings
	err = s.mutate(ctx, fields, func(snap *domain.Snapshot, now time.Time) error {
		req.Todos, req.Notes = snap.Todos, snap.Notes
		model = scheduler.ComputeDisplayModel(req)
		if opts.View != contract.ViewNote {
			snap.Todos = model.Todos
		}
		settings = snap.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["items"] = model.VisibleItemCount()
	fields["manual"] = model.Manual
	return &BoardView{Model: model, Settings: settings, Now: now}, nil
}

func (s *boardService) AddTodo(ctx context.Context, in domain.ScheduleInput) (todo domain.Todo, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "add-todo", startedAt, fields, err) }()

	err = s.mutate(ctx, fields, func(snap *domain.Snapshot, now time.Time) error {
		sched, err := domain.ParseSchedule(in, now, now.Location())
		if err != nil {
			return err
		}
		todo = domain.NewTodo(uuid.New().String(), sched, now, nextOrder(snap.Todos))
		snap.Todos = append(snap.Todos, todo)
		return nil
	})
	if err == nil {
		fields["todo_id"] = todo.ID
	}
	return todo, err
}

func (s *boardService) GetTodo(ctx context.Context, id string) (domain.Todo, error) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("loading board: %w", err)
	}
	i := domain.FindTodo(snap.Todos, id)
	if i < 0 {
		return domain.Todo{}, fmt.Errorf("todo %s: %w", id, repository.ErrNotFound)
	}
	return snap.Todos[i], nil
}

func (s *boardService) UpdateTodo(ctx context.Context, id string, in domain.ScheduleInput) (todo domain.Todo, err error) {
	startedAt := time.Now()
	fields := map[string]any{"todo_id": id}
	defer func() { s.observe(ctx, "update-todo", startedAt, fields, err) }()

	err = s.mutate(ctx, fields, func(snap *domain.Snapshot, now time.Time) error {
		i := domain.FindTodo(snap.Todos, id)
		if i < 0 {
			return fmt.Errorf("todo %s: %w", id, repository.ErrNotFound)
		}
		sched, err := domain.ParseSchedule(in, now, now.Location())
		if err != nil {
			return err
		}
		snap.Todos[i].ApplySchedule(sched)
		todo = snap.Todos[i]
		return nil
	})
	return todo, err
}

func (s *boardService) DeleteTodo(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"todo_id": id}
	defer func() { s.observe(ctx, "delete-todo", startedAt, fields, err) }()

	return s.mutate(ctx, fields, func(snap *domain.Snapshot, _ time.Time) error {
		i := domain.FindTodo(snap.Todos, id)
		if i < 0 {
			return fmt.Errorf("todo %s: %w", id, repository.ErrNotFound)
		}
		snap.Todos = append(snap.Todos[:i], snap.Todos[i+1:]...)
		return nil
	})
}

func (s *boardService) SetCompleted(ctx context.Context, id string, done bool) (todo domain.Todo, err error) {
	startedAt := time.Now()
	fields := map[string]any{"todo_id": id, "completed": done}
	defer func() { s.observe(ctx, "set-completed", startedAt, fields, err) }()

	err = s.mutate(ctx, fields, func(snap *domain.Snapshot, now time.Time) error {
		i := domain.FindTodo(snap.Todos, id)
		if i < 0 {
			return fmt.Errorf("todo %s: %w", id, repository.ErrNotFound)
		}
		snap.Todos[i].SetCompleted(done, now)
		todo = snap.Todos[i]
		return nil
	})
	return todo, err
}

func (s *boardService) Reorder(ctx context.Context, draggedID, targetID string) (moved bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{"dragged": draggedID, "target": targetID}
	defer func() {
		fields["moved"] = moved
		s.observe(ctx, "reorder", startedAt, fields, err)
	}()

	now := s.clock()
	snap, _, err := s.load(ctx, now)
	if err != nil {
		return false, err
	}
	todos, ok := scheduler.Reorder(snap.Todos, now, draggedID, targetID)
	if !ok {
		return false, nil
	}
	snap.Todos = todos
	if err := s.save(ctx, snap); err != nil {
		return false, err
	}
	return true, nil
}

func (s *boardService) AutoSort(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "auto-sort", startedAt, fields, err) }()

	return s.mutate(ctx, fields, func(snap *domain.Snapshot, now time.Time) error {
		snap.Todos = scheduler.AutoSort(scheduler.ClearManualOrder(snap.Todos), now)
		return nil
	})
}

func (s *boardService) AddNote(ctx context.Context, text string) (note domain.Note, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "add-note", startedAt, fields, err) }()

	text, err = domain.NormalizeText(text)
	if err != nil {
		return domain.Note{}, err
	}
	err = s.mutate(ctx, fields, func(snap *domain.Snapshot, now time.Time) error {
		note = domain.Note{ID: uuid.New().String(), Text: text, CreatedAt: now}
		snap.Notes = append(snap.Notes, note)
		return nil
	})
	return note, err
}

func (s *boardService) GetNote(ctx context.Context, id string) (domain.Note, error) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		return domain.Note{}, fmt.Errorf("loading board: %w", err)
	}
	i := domain.FindNote(snap.Notes, id)
	if i < 0 {
		return domain.Note{}, fmt.Errorf("note %s: %w", id, repository.ErrNotFound)
	}
	return snap.Notes[i], nil
}

func (s *boardService) UpdateNote(ctx context.Context, id, text string) (note domain.Note, err error) {
	startedAt := time.Now()
	fields := map[string]any{"note_id": id}
	defer func() { s.observe(ctx, "update-note", startedAt, fields, err) }()

	text, err = domain.NormalizeText(text)
	if err != nil {
		return domain.Note{}, err
	}
	err = s.mutate(ctx, fields, func(snap *domain.Snapshot, _ time.Time) error {
		i := domain.FindNote(snap.Notes, id)
		if i < 0 {
			return fmt.Errorf("note %s: %w", id, repository.ErrNotFound)
		}
		snap.Notes[i].Text = text
		note = snap.Notes[i]
		return nil
	})
	return note, err
}

func (s *boardService) DeleteNote(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"note_id": id}
	defer func() { s.observe(ctx, "delete-note", startedAt, fields, err) }()

	return s.mutate(ctx, fields, func(snap *domain.Snapshot, _ time.Time) error {
		i := domain.FindNote(snap.Notes, id)
		if i < 0 {
			return fmt.Errorf("note %s: %w", id, repository.ErrNotFound)
		}
		snap.Notes = append(snap.Notes[:i], snap.Notes[i+1:]...)
		return nil
	})
}

func (s *boardService) UpdateSettings(ctx context.Context, patch SettingsPatch) (settings domain.Settings, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "update-settings", startedAt, fields, err) }()

	err = s.mutate(ctx, fields, func(snap *domain.Snapshot, _ time.Time) error {
		if patch.WidgetEnabled != nil {
			snap.Settings.WidgetEnabled = *patch.WidgetEnabled
		}
		if patch.WidgetCollapsed != nil {
			snap.Settings.WidgetCollapsed = *patch.WidgetCollapsed
		}
		settings = snap.Settings
		return nil
	})
	fields["widget_enabled"] = settings.WidgetEnabled
	fields["widget_collapsed"] = settings.WidgetCollapsed
	return settings, err
}

// Import replaces the whole store with a decoded dump, then applies
// retention as a fresh load would.
func (s *boardService) Import(ctx context.Context, r io.Reader) (res *importer.Result, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "import", startedAt, fields, err) }()

	res, err = importer.Decode(r)
	if err != nil {
		return nil, err
	}
	snap := res.Snapshot
	before := len(snap.Todos)
	snap.Todos = scheduler.Cleanup(snap.Todos, s.clock())
	fields["todo_count"] = len(snap.Todos)
	fields["note_count"] = len(snap.Notes)
	fields["skipped"] = len(res.Skipped)
	fields["expired"] = before - len(snap.Todos)
	if err = s.save(ctx, snap); err != nil {
		return nil, err
	}
	res.Snapshot = snap
	return res, nil
}

func (s *boardService) Export(ctx context.Context, w io.Writer) (err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "export", startedAt, fields, err) }()

	snap, err := s.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}
	fields["todo_count"] = len(snap.Todos)
	return importer.Encode(w, snap)
}

func (s *boardService) ResolveTodoID(ctx context.Context, prefix string) (string, error) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("loading board: %w", err)
	}
	ids := make([]string, len(snap.Todos))
	for i, t := range snap.Todos {
		ids[i] = t.ID
	}
	return resolvePrefix("todo", prefix, ids)
}

func (s *boardService) ResolveNoteID(ctx context.Context, prefix string) (string, error) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("loading board: %w", err)
	}
	ids := make([]string, len(snap.Notes))
	for i, n := range snap.Notes {
		ids[i] = n.ID
	}
	return resolvePrefix("note", prefix, ids)
}

// resolvePrefix prefers an exact match, then a unique prefix.
func resolvePrefix(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required: %w", kind, repository.ErrNotFound)
	}
	var match string
	count := 0
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			match = id
			count++
		}
	}
	switch count {
	case 0:
		return "", fmt.Errorf("%s %s: %w", kind, prefix, repository.ErrNotFound)
	case 1:
		return match, nil
	default:
		return "", fmt.Errorf("%s %s matches %d ids: %w", kind, prefix, count, repository.ErrAmbiguousID)
	}
}
