package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/nudge/internal/db"
	"github.com/alexanderramin/nudge/internal/domain"
)

type SQLiteStore struct {
	db  *sql.DB
	uow db.UnitOfWork
}

func NewSQLiteStore(sqlDB *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: sqlDB, uow: db.NewSQLiteUnitOfWork(sqlDB)}
}

// NewSQLiteStoreWithUoW lets tests inject a failing unit of work.
func NewSQLiteStoreWithUoW(sqlDB *sql.DB, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{db: sqlDB, uow: uow}
}

// todoRow is the stored shape of a todo. Fingerprints are taken over rows
// rather than domain values so time zones do not count as a change.
type todoRow struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	CreatedAt   string  `json:"createdAt"`
	StartAt     *string `json:"startAt"`
	Deadline    string  `json:"deadline"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completedAt"`
	Order       int     `json:"order"`
	ManualOrder bool    `json:"manualOrder"`
}

type noteRow struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type settingsRow struct {
	WidgetEnabled   bool `json:"widgetEnabled"`
	WidgetCollapsed bool `json:"widgetCollapsed"`
}

func toTodoRow(t domain.Todo) todoRow {
	return todoRow{
		ID:          t.ID,
		Text:        t.Text,
		CreatedAt:   formatTime(t.CreatedAt),
		StartAt:     optionalTime(t.StartAt),
		Deadline:    formatTime(t.Deadline),
		Completed:   t.Completed,
		CompletedAt: optionalTime(t.CompletedAt),
		Order:       t.Order,
		ManualOrder: t.ManualOrder,
	}
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// emptyPrints are the fingerprints of a fresh store's contents.
var emptyPrints = func() map[string]string {
	prints, err := fingerprints([]todoRow{}, []noteRow{}, settingsRow{})
	if err != nil {
		panic(err)
	}
	return prints
}()

func fingerprints(todos []todoRow, notes []noteRow, settings settingsRow) (map[string]string, error) {
	prints := make(map[string]string, len(domain.AllKeys))
	for key, v := range map[string]any{
		domain.KeyTodos:    todos,
		domain.KeyNotes:    notes,
		domain.KeySettings: settings,
	} {
		fp, err := fingerprint(v)
		if err != nil {
			return nil, fmt.Errorf("fingerprinting %s: %w", key, err)
		}
		prints[key] = fp
	}
	return prints, nil
}

// Set replaces the whole collection in one transaction and bumps the
// revision of every key whose content changed.
func (s *SQLiteStore) Set(ctx context.Context, snap domain.Snapshot) error {
	todos := make([]todoRow, 0, len(snap.Todos))
	for _, t := range snap.Todos {
		todos = append(todos, toTodoRow(t))
	}
	notes := make([]noteRow, 0, len(snap.Notes))
	for _, n := range snap.Notes {
		notes = append(notes, noteRow{ID: n.ID, Text: n.Text, CreatedAt: formatTime(n.CreatedAt)})
	}
	settings := settingsRow{
		WidgetEnabled:   snap.Settings.WidgetEnabled,
		WidgetCollapsed: snap.Settings.WidgetCollapsed,
	}

	prints, err := fingerprints(todos, notes, settings)
	if err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM todos`); err != nil {
			return fmt.Errorf("clearing todos: %w", err)
		}
		for i, r := range todos {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO todos (id, position, text, created_at, start_at, deadline,
				 completed, completed_at, sort_order, manual_order)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, i, r.Text, r.CreatedAt, stringOrNil(r.StartAt), r.Deadline,
				boolToInt(r.Completed), stringOrNil(r.CompletedAt), r.Order, boolToInt(r.ManualOrder),
			)
			if err != nil {
				return fmt.Errorf("inserting todo %s: %w", r.ID, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
			return fmt.Errorf("clearing notes: %w", err)
		}
		for i, r := range notes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO notes (id, position, text, created_at) VALUES (?, ?, ?, ?)`,
				r.ID, i, r.Text, r.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("inserting note %s: %w", r.ID, err)
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO settings (id, widget_enabled, widget_collapsed) VALUES ('default', ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   widget_enabled = excluded.widget_enabled,
			   widget_collapsed = excluded.widget_collapsed`,
			boolToInt(settings.WidgetEnabled), boolToInt(settings.WidgetCollapsed),
		)
		if err != nil {
			return fmt.Errorf("upserting settings: %w", err)
		}

		// A blank stored fingerprint stands for the empty default.
		for _, key := range domain.AllKeys {
			_, err := tx.ExecContext(ctx,
				`UPDATE store_revisions
				 SET revision = revision + 1, fingerprint = ?
				 WHERE key = ? AND fingerprint != ?
				   AND NOT (fingerprint = '' AND ? = ?)`,
				prints[key], key, prints[key], prints[key], emptyPrints[key],
			)
			if err != nil {
				return fmt.Errorf("bumping %s revision: %w", key, err)
			}
		}
		return nil
	})
}

func stringOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// Get reads the whole collection. Rows whose required timestamps do not
// parse are dropped instead of failing the load.
func (s *SQLiteStore) Get(ctx context.Context) (domain.Snapshot, error) {
	snap := domain.Snapshot{Todos: []domain.Todo{}, Notes: []domain.Note{}}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		todos, err := s.listTodos(ctx, tx)
		if err != nil {
			return err
		}
		notes, err := s.listNotes(ctx, tx)
		if err != nil {
			return err
		}
		settings, err := s.getSettings(ctx, tx)
		if err != nil {
			return err
		}
		snap.Todos, snap.Notes, snap.Settings = todos, notes, settings
		return nil
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

func (s *SQLiteStore) listTodos(ctx context.Context, q db.DBTX) ([]domain.Todo, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, text, created_at, start_at, deadline, completed, completed_at,
		 sort_order, manual_order
		 FROM todos ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, ok, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		if ok {
			todos = append(todos, t)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

func scanTodo(rows *sql.Rows) (domain.Todo, bool, error) {
	var (
		t                      domain.Todo
		createdAt, deadline    string
		startAt, completedAt   sql.NullString
		completed, manualOrder int
	)
	err := rows.Scan(&t.ID, &t.Text, &createdAt, &startAt, &deadline,
		&completed, &completedAt, &t.Order, &manualOrder)
	if err != nil {
		return domain.Todo{}, false, err
	}

	created, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.Todo{}, false, nil
	}
	due, err := time.Parse(timeLayout, deadline)
	if err != nil {
		return domain.Todo{}, false, nil
	}
	t.CreatedAt = created
	t.Deadline = due
	t.StartAt = parseNullableTime(startAt)
	t.Completed = intToBool(completed)
	t.CompletedAt = parseNullableTime(completedAt)
	t.ManualOrder = intToBool(manualOrder)
	return t, true, nil
}

func (s *SQLiteStore) listNotes(ctx context.Context, q db.DBTX) ([]domain.Note, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, text, created_at FROM notes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var (
			n         domain.Note
			createdAt string
		)
		if err := rows.Scan(&n.ID, &n.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		created, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			continue
		}
		n.CreatedAt = created
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

func (s *SQLiteStore) getSettings(ctx context.Context, q db.DBTX) (domain.Settings, error) {
	var enabled, collapsed int
	err := q.QueryRowContext(ctx,
		`SELECT widget_enabled, widget_collapsed FROM settings WHERE id = 'default'`,
	).Scan(&enabled, &collapsed)
	if err == sql.ErrNoRows {
		return domain.Settings{}, nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("getting settings: %w", err)
	}
	return domain.Settings{
		WidgetEnabled:   intToBool(enabled),
		WidgetCollapsed: intToBool(collapsed),
	}, nil
}

// Revisions returns the current revision of every storage key.
func (s *SQLiteStore) Revisions(ctx context.Context) (map[string]int64, error) {
	return readRevisions(ctx, s.db)
}

func readRevisions(ctx context.Context, q db.DBTX) (map[string]int64, error) {
	rows, err := q.QueryContext(ctx, `SELECT key, revision FROM store_revisions`)
	if err != nil {
		return nil, fmt.Errorf("reading revisions: %w", err)
	}
	defer rows.Close()

	revs := make(map[string]int64, len(domain.AllKeys))
	for rows.Next() {
		var (
			key string
			rev int64
		)
		if err := rows.Scan(&key, &rev); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		revs[key] = rev
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revisions: %w", err)
	}
	return revs, nil
}

var _ Store = (*SQLiteStore)(nil)
