package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
)

// AreaLocal is the only storage area; change events carry it so consumers
// can ignore areas they do not read.
const AreaLocal = "local"

// Store is the shared key-value collection both surfaces read and write.
// Set replaces the whole snapshot; concurrent writers are last-writer-wins.
type Store interface {
	Get(ctx context.Context) (domain.Snapshot, error)
	Set(ctx context.Context, snap domain.Snapshot) error
}

// ChangeEvent reports which keys another writer changed. Several writes
// between two polls coalesce into one event.
type ChangeEvent struct {
	ChangedKeys []string
	Area        string
}

// Has reports whether key is among the changed keys.
func (e ChangeEvent) Has(key string) bool {
	for _, k := range e.ChangedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Watcher streams change events until ctx is cancelled, then closes the
// channel.
type Watcher interface {
	Watch(ctx context.Context, interval time.Duration) (<-chan ChangeEvent, error)
}
