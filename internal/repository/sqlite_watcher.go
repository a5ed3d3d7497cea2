package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// DefaultWatchInterval is how often the watcher polls store revisions.
const DefaultWatchInterval = 500 * time.Millisecond

// SQLiteWatcher detects writes from any process sharing the database file
// by polling the per-key revisions that Set maintains.
type SQLiteWatcher struct {
	db *sql.DB
}

func NewSQLiteWatcher(db *sql.DB) *SQLiteWatcher {
	return &SQLiteWatcher{db: db}
}

// Watch takes a baseline immediately, so only writes after the call are
// reported. Read errors while polling are skipped; the next tick retries.
func (w *SQLiteWatcher) Watch(ctx context.Context, interval time.Duration) (<-chan ChangeEvent, error) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	last, err := readRevisions(ctx, w.db)
	if err != nil {
		return nil, fmt.Errorf("starting watch: %w", err)
	}

	out := make(chan ChangeEvent)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			revs, err := readRevisions(ctx, w.db)
			if err != nil {
				continue
			}
			var changed []string
			for _, key := range domain.AllKeys {
				if revs[key] != last[key] {
					changed = append(changed, key)
				}
			}
			if len(changed) == 0 {
				continue
			}
			last = revs

			select {
			case out <- ChangeEvent{ChangedKeys: changed, Area: AreaLocal}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

var _ Watcher = (*SQLiteWatcher)(nil)
