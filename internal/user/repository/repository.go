package repository

import (
	"context"
	"time"

	"github.com/AlibekovAA/messenger/backend/internal/user/domain"
)

// PasswordCheck reports whether the stored hash matches the candidate
// password. It runs while the user row is locked.
type PasswordCheck func(passwordHash string) (bool, error)

// Repository is the credential store and user directory.
//
// Lookups of an unknown username fail with commonerrors.ErrUserNotFound and
// Create with an existing one fails with commonerrors.ErrDuplicateUser.
type Repository interface {
	Create(ctx context.Context, user domain.User) error
	// Authenticate runs check against the stored hash and, when it passes,
	// sets last_login_at to loginAt in the same transaction.
	Authenticate(ctx context.Context, username string, check PasswordCheck, loginAt time.Time) (bool, error)
	List(ctx context.Context) ([]domain.Summary, error)
	Get(ctx context.Context, username string) (domain.Detail, error)
	Exists(ctx context.Context, username string) (bool, error)
	MessagesFrom(ctx context.Context, username string) ([]domain.Correspondence, error)
	MessagesTo(ctx context.Context, username string) ([]domain.Correspondence, error)
}
