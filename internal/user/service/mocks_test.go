package service

import (
	"context"
	"time"

	"github.com/AlibekovAA/messenger/backend/internal/user/domain"
	"github.com/AlibekovAA/messenger/backend/internal/user/repository"
)

type mockRepository struct {
	CreateFunc       func(ctx context.Context, user domain.User) error
	AuthenticateFunc func(ctx context.Context, username string, check repository.PasswordCheck, loginAt time.Time) (bool, error)
	ListFunc         func(ctx context.Context) ([]domain.Summary, error)
	GetFunc          func(ctx context.Context, username string) (domain.Detail, error)
	ExistsFunc       func(ctx context.Context, username string) (bool, error)
	MessagesFromFunc func(ctx context.Context, username string) ([]domain.Correspondence, error)
	MessagesToFunc   func(ctx context.Context, username string) ([]domain.Correspondence, error)
}

func (m *mockRepository) Create(ctx context.Context, user domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockRepository) Authenticate(ctx context.Context, username string, check repository.PasswordCheck, loginAt time.Time) (bool, error) {
	return m.AuthenticateFunc(ctx, username, check, loginAt)
}

func (m *mockRepository) List(ctx context.Context) ([]domain.Summary, error) {
	return m.ListFunc(ctx)
}

func (m *mockRepository) Get(ctx context.Context, username string) (domain.Detail, error) {
	return m.GetFunc(ctx, username)
}

func (m *mockRepository) Exists(ctx context.Context, username string) (bool, error) {
	return m.ExistsFunc(ctx, username)
}

func (m *mockRepository) MessagesFrom(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return m.MessagesFromFunc(ctx, username)
}

func (m *mockRepository) MessagesTo(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return m.MessagesToFunc(ctx, username)
}

type mockHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(password, hash string) (bool, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	return m.HashFunc(password)
}

func (m *mockHasher) Verify(password, hash string) (bool, error) {
	return m.VerifyFunc(password, hash)
}
