package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	userdomain "github.com/AlibekovAA/messenger/backend/internal/user/domain"
	userservice "github.com/AlibekovAA/messenger/backend/internal/user/service"
)

type mockDirectory struct {
	RegisterFunc     func(ctx context.Context, input userservice.RegisterInput) (userdomain.Detail, error)
	AuthenticateFunc func(ctx context.Context, username, password string) (bool, error)
}

func (m *mockDirectory) Register(ctx context.Context, input userservice.RegisterInput) (userdomain.Detail, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *mockDirectory) Authenticate(ctx context.Context, username, password string) (bool, error) {
	return m.AuthenticateFunc(ctx, username, password)
}

type mockIssuer struct {
	IssueFunc func(username string) (string, error)
}

func (m *mockIssuer) Issue(username string) (string, error) {
	return m.IssueFunc(username)
}

func tokenFor(username string) (string, error) {
	return "token-" + username, nil
}

func TestAuthService_Register(t *testing.T) {
	dir := &mockDirectory{
		RegisterFunc: func(_ context.Context, input userservice.RegisterInput) (userdomain.Detail, error) {
			return userdomain.Detail{Username: input.Username}, nil
		},
	}
	svc := NewAuthService(dir, &mockIssuer{IssueFunc: tokenFor}, logger.Nop())

	tok, err := svc.Register(context.Background(), userservice.RegisterInput{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "token-alice", tok)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	dir := &mockDirectory{
		RegisterFunc: func(context.Context, userservice.RegisterInput) (userdomain.Detail, error) {
			return userdomain.Detail{}, commonerrors.ErrDuplicateUser
		},
	}
	issued := false
	svc := NewAuthService(dir, &mockIssuer{IssueFunc: func(string) (string, error) {
		issued = true
		return "", nil
	}}, logger.Nop())

	_, err := svc.Register(context.Background(), userservice.RegisterInput{Username: "alice"})
	assert.ErrorIs(t, err, commonerrors.ErrDuplicateUser)
	assert.False(t, issued)
}

func TestAuthService_Login(t *testing.T) {
	dbErr := commonerrors.ErrDatabaseError.WithCause(errors.New("down"))

	tests := []struct {
		name      string
		ok        bool
		err       error
		wantToken string
		wantErr   error
	}{
		{name: "success", ok: true, wantToken: "token-alice"},
		{name: "wrong password", ok: false, wantErr: commonerrors.ErrInvalidCredentials},
		{name: "unknown user", err: commonerrors.ErrUserNotFound, wantErr: commonerrors.ErrInvalidCredentials},
		{name: "storage failure", err: dbErr, wantErr: commonerrors.ErrDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &mockDirectory{
				AuthenticateFunc: func(context.Context, string, string) (bool, error) { return tt.ok, tt.err },
			}
			svc := NewAuthService(dir, &mockIssuer{IssueFunc: tokenFor}, logger.Nop())

			tok, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "pw"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, tok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, tok)
		})
	}
}

func TestAuthService_IssueFailure(t *testing.T) {
	dir := &mockDirectory{
		AuthenticateFunc: func(context.Context, string, string) (bool, error) { return true, nil },
	}
	svc := NewAuthService(dir, &mockIssuer{IssueFunc: func(string) (string, error) {
		return "", commonerrors.ErrTokenIssueFailed
	}}, logger.Nop())

	_, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, commonerrors.ErrTokenIssueFailed)
}
