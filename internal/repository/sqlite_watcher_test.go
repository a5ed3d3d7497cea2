package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInterval = 5 * time.Millisecond

func nextEvent(t *testing.T, events <-chan repository.ChangeEvent) repository.ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "channel closed before an event arrived")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
		return repository.ChangeEvent{}
	}
}

func TestSQLiteWatcher_EmitsChangedKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := testutil.NewFileDBPath(t)
	popup := repository.NewSQLiteStore(testutil.OpenFileDB(t, path))
	watcher := repository.NewSQLiteWatcher(testutil.OpenFileDB(t, path))

	events, err := watcher.Watch(ctx, testInterval)
	require.NoError(t, err)

	require.NoError(t, popup.Set(ctx, domain.Snapshot{
		Todos: []domain.Todo{testutil.NewTestTodo("a")},
	}))
	ev := nextEvent(t, events)
	assert.Equal(t, []string{domain.KeyTodos}, ev.ChangedKeys)
	assert.Equal(t, repository.AreaLocal, ev.Area)
	assert.True(t, ev.Has(domain.KeyTodos))
	assert.False(t, ev.Has(domain.KeySettings))

	snap, err := popup.Get(ctx)
	require.NoError(t, err)
	snap.Settings.WidgetEnabled = true
	snap.Notes = []domain.Note{testutil.NewTestNote("n")}
	require.NoError(t, popup.Set(ctx, snap))

	ev = nextEvent(t, events)
	assert.Equal(t, []string{domain.KeyNotes, domain.KeySettings}, ev.ChangedKeys)
}

func TestSQLiteWatcher_IgnoresWritesWithoutChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteStore(database)
	snap := domain.Snapshot{Todos: []domain.Todo{testutil.NewTestTodo("a")}}
	require.NoError(t, store.Set(ctx, snap))

	events, err := repository.NewSQLiteWatcher(database).Watch(ctx, testInterval)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, snap))
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSQLiteWatcher_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events, err := repository.NewSQLiteWatcher(testutil.NewTestDB(t)).Watch(ctx, testInterval)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
