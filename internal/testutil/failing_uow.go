package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/nudge/internal/db"
)

// FailingUoW runs real transactions but makes one write statement fail, so
// tests can check that a snapshot write lands whole or not at all.
//
// With Match set, the first ExecContext whose SQL contains Match fails.
// Otherwise the FailOn'th ExecContext (counting from 1) fails. Reads are
// never intercepted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Match  string
	Err    error

	// Execs counts statements seen across all transactions.
	Execs int
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	failing := &failingTx{DBTX: tx, uow: u}
	return db.RunTx(ctx, tx, func(ctx context.Context) error { return fn(ctx, failing) })
}

type failingTx struct {
	db.DBTX
	uow   *FailingUoW
	fired bool
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Execs++
	if !f.fired && f.shouldFail(query) {
		f.fired = true
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *failingTx) shouldFail(query string) bool {
	if f.uow.Match != "" {
		return strings.Contains(query, f.uow.Match)
	}
	return f.uow.Execs == f.uow.FailOn
}
