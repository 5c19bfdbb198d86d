package service

import (
	"context"
	"errors"

	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	userdomain "github.com/AlibekovAA/messenger/backend/internal/user/domain"
	userservice "github.com/AlibekovAA/messenger/backend/internal/user/service"
)

type Directory interface {
	Register(ctx context.Context, input userservice.RegisterInput) (userdomain.Detail, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(username string) (string, error)
}

type LoginInput struct {
	Username string
	Password string
}

// AuthService turns successful registrations and logins into session tokens.
type AuthService struct {
	directory Directory
	tokens    TokenIssuer
	log       *logger.Logger
}

func NewAuthService(directory Directory, tokens TokenIssuer, log *logger.Logger) *AuthService {
	return &AuthService{directory: directory, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, input userservice.RegisterInput) (string, error) {
	user, err := s.directory.Register(ctx, input)
	if err != nil {
		return "", err
	}
	return s.issue(ctx, user.Username)
}

// Login reports an unknown user and a wrong password the same way.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	ok, err := s.directory.Authenticate(ctx, input.Username, input.Password)
	if errors.Is(err, commonerrors.ErrUserNotFound) || (err == nil && !ok) {
		return "", commonerrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	return s.issue(ctx, input.Username)
}

func (s *AuthService) issue(ctx context.Context, username string) (string, error) {
	token, err := s.tokens.Issue(username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "token_issue_failed",
		}).Errorf("token issue failed: %v", err)
		return "", err
	}
	return token, nil
}
