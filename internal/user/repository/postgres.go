package repository

import (
	"context"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/messenger/backend/internal/common/db"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/user/domain"
)

type PgRepository struct {
	q   db.Querier
	tx  db.TxManager
	run *db.Runner
}

func NewPgRepository(pool *pgxpool.Pool, run *db.Runner) *PgRepository {
	return &PgRepository{
		q:   pool,
		tx:  db.NewPgTxManager(pool),
		run: run,
	}
}

// Create is not retried: a lost acknowledgement would turn the retry into a
// spurious duplicate.
func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	return r.run.Once(ctx, func(ctx context.Context) error {
		return r.create(ctx, user)
	})
}

func (r *PgRepository) create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.q.Exec(
		ctx,
		`INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.JoinedAt,
		user.LastLoginAt,
	)
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration("create user", start)
		return commonerrors.ErrDuplicateUser.WithCause(err)
	}
	return db.HandleExecError(err, "create user", start)
}

func (r *PgRepository) Authenticate(ctx context.Context, username string, check PasswordCheck, loginAt time.Time) (bool, error) {
	var ok bool
	err := r.run.Run(ctx, func(ctx context.Context) error {
		return r.tx.WithTx(ctx, func(ctx context.Context, q db.Querier) error {
			var err error
			ok, err = authenticateTx(ctx, q, username, check, loginAt)
			return err
		})
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// authenticateTx locks the user row so concurrent logins for the same user
// serialize on the last_login_at update.
func authenticateTx(ctx context.Context, q db.Querier, username string, check PasswordCheck, loginAt time.Time) (bool, error) {
	start := time.Now()
	var hash string
	err := q.QueryRow(ctx, `SELECT password FROM users WHERE username = $1 FOR UPDATE`, username).Scan(&hash)
	if err := db.HandleQueryError(err, commonerrors.ErrUserNotFound, "lock user credentials", start); err != nil {
		return false, err
	}

	ok, err := check(hash)
	if err != nil || !ok {
		return false, err
	}

	start = time.Now()
	_, err = q.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE username = $1`, username, loginAt)
	if err := db.HandleExecError(err, "touch user last login", start); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Summary, error) {
	var users []domain.Summary
	err := r.run.Run(ctx, func(ctx context.Context) error {
		start := time.Now()
		rows, err := r.q.Query(ctx, `SELECT username, first_name, last_name FROM users ORDER BY username`)
		if err != nil {
			return db.HandleQueryError(err, nil, "list users", start)
		}
		defer rows.Close()

		users = []domain.Summary{}
		for rows.Next() {
			var u domain.Summary
			if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName); err != nil {
				return fmt.Errorf("failed to scan user: %w", err)
			}
			users = append(users, u)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration error: %w", err)
		}

		db.MeasureQueryDuration("list users", start)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PgRepository) Get(ctx context.Context, username string) (domain.Detail, error) {
	var u domain.Detail
	err := r.run.Run(ctx, func(ctx context.Context) error {
		start := time.Now()
		err := r.q.QueryRow(
			ctx,
			`SELECT username, first_name, last_name, phone, join_at, last_login_at FROM users WHERE username = $1`,
			username,
		).Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.JoinedAt, &u.LastLoginAt)
		return db.HandleQueryError(err, commonerrors.ErrUserNotFound, "get user", start)
	})
	if err != nil {
		return domain.Detail{}, err
	}
	return u, nil
}

func (r *PgRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.run.Run(ctx, func(ctx context.Context) error {
		start := time.Now()
		err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
		return db.HandleQueryError(err, nil, "check user exists", start)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) MessagesFrom(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return r.correspondence(ctx, "list messages from user",
		`SELECT m.id, m.body, m.sent_at, m.read_at, u.username, u.first_name, u.last_name, u.phone
		 FROM messages m JOIN users u ON u.username = m.to_username
		 WHERE m.from_username = $1
		 ORDER BY m.sent_at, m.id`,
		username,
	)
}

func (r *PgRepository) MessagesTo(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return r.correspondence(ctx, "list messages to user",
		`SELECT m.id, m.body, m.sent_at, m.read_at, u.username, u.first_name, u.last_name, u.phone
		 FROM messages m JOIN users u ON u.username = m.from_username
		 WHERE m.to_username = $1
		 ORDER BY m.sent_at, m.id`,
		username,
	)
}

func (r *PgRepository) correspondence(ctx context.Context, operation, query, username string) ([]domain.Correspondence, error) {
	var out []domain.Correspondence
	err := r.run.Run(ctx, func(ctx context.Context) error {
		start := time.Now()
		rows, err := r.q.Query(ctx, query, username)
		if err != nil {
			return db.HandleQueryError(err, nil, operation, start)
		}
		defer rows.Close()

		out = []domain.Correspondence{}
		for rows.Next() {
			c, err := scanCorrespondence(rows)
			if err != nil {
				return fmt.Errorf("failed to scan message: %w", err)
			}
			out = append(out, c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration error: %w", err)
		}

		db.MeasureQueryDuration(operation, start)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanCorrespondence(row pgx.Row) (domain.Correspondence, error) {
	var c domain.Correspondence
	err := row.Scan(
		&c.ID,
		&c.Body,
		&c.SentAt,
		&c.ReadAt,
		&c.Counterparty.Username,
		&c.Counterparty.FirstName,
		&c.Counterparty.LastName,
		&c.Counterparty.Phone,
	)
	return c, err
}
