package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/alexanderramin/nudge/internal/domain"
	"github.com/alexanderramin/nudge/internal/repository"
	"github.com/alexanderramin/nudge/internal/service"
	"github.com/alexanderramin/nudge/internal/testutil"
	"github.com/stretchr/testify/require"
)

const (
	idAlpha = "aaaa1111-0000-4000-8000-000000000001"
	idBeta  = "bbbb2222-0000-4000-8000-000000000002"
	idNote  = "cccc3333-0000-4000-8000-000000000003"
)

// testApp wires an App over an in-memory store with the clock pinned to
// testutil.Now. The seed, if any, is written before the service starts.
func testApp(t *testing.T, seed ...domain.Snapshot) (*App, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	if len(seed) > 0 {
		testutil.Seed(t, database, seed[0])
	}
	store := repository.NewSQLiteStore(database)
	clock := func() time.Time { return testutil.Now }

	return &App{
		Board:         service.NewBoardServiceWithClock(store, clock),
		WidgetWidth:   40,
		Location:      time.UTC,
		IsInteractive: func() bool { return false },
	}, database
}

// twoTodos seeds alpha (due in two hours) and beta (due in two days), so
// urgency order is alpha then beta.
func twoTodos() domain.Snapshot {
	return domain.Snapshot{Todos: []domain.Todo{
		testutil.NewTestTodo("alpha", testutil.WithID(idAlpha), testutil.WithDeadline(testutil.Now.Add(2*time.Hour))),
		testutil.NewTestTodo("beta", testutil.WithID(idBeta), testutil.WithDeadline(testutil.Now.Add(48*time.Hour))),
	}}
}

func snapshot(t *testing.T, database *sql.DB) domain.Snapshot {
	t.Helper()
	snap, err := repository.NewSQLiteStore(database).Get(context.Background())
	require.NoError(t, err)
	return snap
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, nil, args...)
}

func executeCmdWithInput(t *testing.T, app *App, in io.Reader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
