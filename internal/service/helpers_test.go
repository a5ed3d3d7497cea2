package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}

type clockStub struct {
	now time.Time
}

func (c *clockStub) Now() time.Time { return c.now }

func (c *clockStub) Advance(d time.Duration) { c.now = c.now.Add(d) }

// setupBoard returns a service over a fresh in-memory store with the clock
// pinned to testutil.Now.
func setupBoard(t *testing.T, seed ...domain.Snapshot) (BoardService, *repository.SQLiteStore, *clockStub, *recordingObserver) {
	t.Helper()
	database := testutil.NewTestDB(t)
	if len(seed) > 0 {
		testutil.Seed(t, database, seed[0])
	}
	store := repository.NewSQLiteStore(database)
	clock := &clockStub{now: testutil.Now}
	obs := &recordingObserver{}
	return NewBoardServiceWithClock(store, clock.Now, obs), store, clock, obs
}

func mustGet(t *testing.T, store repository.Store) domain.Snapshot {
	t.Helper()
	snap, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	return snap
}

func todoIDs(todos []domain.Todo) []string {
	out := make([]string, len(todos))
	for i, td := range todos {
		out[i] = td.ID
	}
	return out
}
