package repository

import (
	"context"
	"time"

	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/memstore"
	"github.com/AlibekovAA/messenger/backend/internal/message/domain"
)

type MemoryRepository struct {
	store *memstore.Store
}

func NewMemoryRepository(store *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) Create(ctx context.Context, msg domain.Message) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}
	var created domain.Message
	err := r.store.Write(func(tx *memstore.Tx) error {
		if _, ok := tx.User(msg.FromUsername); !ok {
			return commonerrors.ErrUserNotFound
		}
		if _, ok := tx.User(msg.ToUsername); !ok {
			return commonerrors.ErrUserNotFound
		}
		msg.ReadAt = nil
		created = tx.AppendMessage(msg)
		return nil
	})
	if err != nil {
		return domain.Message{}, err
	}
	return created, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (domain.Detail, error) {
	if err := ctx.Err(); err != nil {
		return domain.Detail{}, err
	}
	var (
		d     domain.Detail
		found bool
	)
	r.store.Read(func(tx *memstore.Tx) {
		idx := tx.MessageIndex(id)
		if idx < 0 {
			return
		}
		m := tx.Message(idx)
		from, _ := tx.User(m.FromUsername)
		to, _ := tx.User(m.ToUsername)
		d = domain.Detail{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: from.Profile(),
			ToUser:   to.Profile(),
		}
		found = true
	})
	if !found {
		return domain.Detail{}, commonerrors.ErrMessageNotFound
	}
	return d, nil
}

func (r *MemoryRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) (domain.ReadReceipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReadReceipt{}, err
	}
	var receipt domain.ReadReceipt
	err := r.store.Write(func(tx *memstore.Tx) error {
		idx := tx.MessageIndex(id)
		if idx < 0 {
			return commonerrors.ErrMessageNotFound
		}
		m := tx.Message(idx)
		if m.ReadAt == nil {
			at := readAt
			m.ReadAt = &at
			tx.ReplaceMessage(idx, m)
		}
		receipt = domain.ReadReceipt{ID: m.ID, ReadAt: *m.ReadAt}
		return nil
	})
	if err != nil {
		return domain.ReadReceipt{}, err
	}
	return receipt, nil
}
