package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/messenger/backend/internal/common/db"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/message/domain"
)

type PgRepository struct {
	q   db.Querier
	run *db.Runner
}

func NewPgRepository(pool *pgxpool.Pool, run *db.Runner) *PgRepository {
	return &PgRepository{q: pool, run: run}
}

func (r *PgRepository) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	var created domain.Message
	err := r.run.Once(ctx, func(ctx context.Context) error {
		var err error
		created, err = r.create(ctx, msg)
		return err
	})
	return created, err
}

func (r *PgRepository) create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	start := time.Now()
	err := r.q.QueryRow(
		ctx,
		`INSERT INTO messages (from_username, to_username, body, sent_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		msg.FromUsername,
		msg.ToUsername,
		msg.Body,
		msg.SentAt,
	).Scan(&msg.ID)
	if db.IsForeignKeyViolation(err) {
		db.MeasureQueryDuration("create message", start)
		return domain.Message{}, commonerrors.ErrUserNotFound.WithCause(err)
	}
	if err := db.HandleQueryError(err, nil, "create message", start); err != nil {
		return domain.Message{}, err
	}
	msg.ReadAt = nil
	return msg, nil
}

func (r *PgRepository) Get(ctx context.Context, id int64) (domain.Detail, error) {
	var d domain.Detail
	err := r.run.Run(ctx, func(ctx context.Context) error {
		start := time.Now()
		err := r.q.QueryRow(
			ctx,
			`SELECT m.id, m.body, m.sent_at, m.read_at,
			        f.username, f.first_name, f.last_name, f.phone,
			        t.username, t.first_name, t.last_name, t.phone
			 FROM messages m
			 JOIN users f ON f.username = m.from_username
			 JOIN users t ON t.username = m.to_username
			 WHERE m.id = $1`,
			id,
		).Scan(
			&d.ID, &d.Body, &d.SentAt, &d.ReadAt,
			&d.FromUser.Username, &d.FromUser.FirstName, &d.FromUser.LastName, &d.FromUser.Phone,
			&d.ToUser.Username, &d.ToUser.FirstName, &d.ToUser.LastName, &d.ToUser.Phone,
		)
		return db.HandleQueryError(err, commonerrors.ErrMessageNotFound, "get message", start)
	})
	if err != nil {
		return domain.Detail{}, err
	}
	return d, nil
}

// MarkRead is safe to retry: COALESCE keeps the first timestamp.
func (r *PgRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) (domain.ReadReceipt, error) {
	var receipt domain.ReadReceipt
	err := r.run.Run(ctx, func(ctx context.Context) error {
		start := time.Now()
		err := r.q.QueryRow(
			ctx,
			`UPDATE messages SET read_at = COALESCE(read_at, $2)
			 WHERE id = $1
			 RETURNING id, read_at`,
			id,
			readAt,
		).Scan(&receipt.ID, &receipt.ReadAt)
		return db.HandleQueryError(err, commonerrors.ErrMessageNotFound, "mark message read", start)
	})
	if err != nil {
		return domain.ReadReceipt{}, err
	}
	return receipt, nil
}
