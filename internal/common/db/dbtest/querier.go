// Package dbtest provides scripted stand-ins for db.Querier and db.TxManager.
package dbtest

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/messenger/backend/internal/common/db"
)

type Row struct {
	ScanFunc func(dest ...any) error
}

func (r Row) Scan(dest ...any) error {
	if r.ScanFunc == nil {
		return pgx.ErrNoRows
	}
	return r.ScanFunc(dest...)
}

// ErrRow returns a row whose Scan fails with err.
func ErrRow(err error) Row {
	return Row{ScanFunc: func(...any) error { return err }}
}

type Call struct {
	SQL  string
	Args []any
}

type Querier struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row

	Calls []Call
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
	if q.ExecFunc != nil {
		return q.ExecFunc(ctx, sql, args...)
	}
	return pgconn.CommandTag("OK"), nil
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
	if q.QueryFunc != nil {
		return q.QueryFunc(ctx, sql, args...)
	}
	return nil, errors.New("dbtest: Query not scripted")
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
	if q.QueryRowFunc != nil {
		return q.QueryRowFunc(ctx, sql, args...)
	}
	return Row{}
}

// TxManager runs fn against Querier and records whether it committed.
type TxManager struct {
	Querier    *Querier
	Committed  int
	RolledBack int
}

func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	if err := fn(ctx, m.Querier); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}
