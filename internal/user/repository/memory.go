package repository

import (
	"context"
	"sort"
	"time"

	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/memstore"
	"github.com/AlibekovAA/messenger/backend/internal/user/domain"
)

type MemoryRepository struct {
	store *memstore.Store
}

func NewMemoryRepository(store *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) Create(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Write(func(tx *memstore.Tx) error {
		if _, exists := tx.User(user.Username); exists {
			return commonerrors.ErrDuplicateUser
		}
		tx.PutUser(user)
		return nil
	})
}

// Authenticate runs check without holding the store lock, so a slow hash
// never blocks unrelated requests. last_login_at is only touched if the
// stored hash is still the one that was checked.
func (r *MemoryRepository) Authenticate(ctx context.Context, username string, check PasswordCheck, loginAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var (
		u      domain.User
		exists bool
	)
	r.store.Read(func(tx *memstore.Tx) {
		u, exists = tx.User(username)
	})
	if !exists {
		return false, commonerrors.ErrUserNotFound
	}

	ok, err := check(u.PasswordHash)
	if err != nil || !ok {
		return false, err
	}

	err = r.store.Write(func(tx *memstore.Tx) error {
		current, exists := tx.User(username)
		if !exists {
			return commonerrors.ErrUserNotFound
		}
		if current.PasswordHash != u.PasswordHash {
			ok = false
			return nil
		}
		current.LastLoginAt = loginAt
		tx.PutUser(current)
		return nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	users := []domain.Summary{}
	r.store.Read(func(tx *memstore.Tx) {
		for _, u := range tx.Users() {
			users = append(users, u.Summary())
		}
	})
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *MemoryRepository) Get(ctx context.Context, username string) (domain.Detail, error) {
	if err := ctx.Err(); err != nil {
		return domain.Detail{}, err
	}
	var (
		u      domain.User
		exists bool
	)
	r.store.Read(func(tx *memstore.Tx) {
		u, exists = tx.User(username)
	})
	if !exists {
		return domain.Detail{}, commonerrors.ErrUserNotFound
	}
	return u.Detail(), nil
}

func (r *MemoryRepository) Exists(ctx context.Context, username string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var exists bool
	r.store.Read(func(tx *memstore.Tx) {
		_, exists = tx.User(username)
	})
	return exists, nil
}

func (r *MemoryRepository) MessagesFrom(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return r.correspondence(ctx, func(from, to string) (string, bool) {
		return to, from == username
	})
}

func (r *MemoryRepository) MessagesTo(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return r.correspondence(ctx, func(from, to string) (string, bool) {
		return from, to == username
	})
}

// correspondence lists messages accepted by match, which also names the
// counterparty whose profile is attached.
func (r *MemoryRepository) correspondence(ctx context.Context, match func(from, to string) (string, bool)) ([]domain.Correspondence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []domain.Correspondence{}
	r.store.Read(func(tx *memstore.Tx) {
		for _, m := range tx.Messages() {
			other, ok := match(m.FromUsername, m.ToUsername)
			if !ok {
				continue
			}
			counterparty, _ := tx.User(other)
			out = append(out, domain.Correspondence{
				ID:           m.ID,
				Body:         m.Body,
				SentAt:       m.SentAt,
				ReadAt:       m.ReadAt,
				Counterparty: counterparty.Profile(),
			})
		}
	})
	return out, nil
}
