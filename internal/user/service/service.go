package service

import (
	"context"
	"errors"
	"time"

	"github.com/AlibekovAA/messenger/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/messenger/backend/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/observability/metrics"
	"github.com/AlibekovAA/messenger/backend/internal/user/domain"
	"github.com/AlibekovAA/messenger/backend/internal/user/repository"
)

type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type Directory struct {
	repo   repository.Repository
	hasher commoncrypto.PasswordHasher
	clock  clock.Clock
	log    *logger.Logger
}

func NewDirectory(repo repository.Repository, hasher commoncrypto.PasswordHasher, clk clock.Clock, log *logger.Logger) *Directory {
	return &Directory{
		repo:   repo,
		hasher: hasher,
		clock:  clk,
		log:    log,
	}
}

func (d *Directory) Register(ctx context.Context, input RegisterInput) (domain.Detail, error) {
	if err := validateRegistration(input); err != nil {
		d.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return domain.Detail{}, err
	}

	start := time.Now()
	hash, err := d.hasher.Hash(input.Password)
	metrics.PasswordHashDurationSeconds.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		d.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return domain.Detail{}, commonerrors.ErrHashFailed.WithCause(err)
	}

	now := d.clock.Now()
	user := domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		JoinedAt:     now,
		LastLoginAt:  now,
	}

	if err := d.repo.Create(ctx, user); err != nil {
		if errors.Is(err, commonerrors.ErrDuplicateUser) {
			d.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return domain.Detail{}, err
		}
		d.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return domain.Detail{}, storageError(err)
	}

	d.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"action":   "register_success",
	}).Info("register success")
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	return user.Detail(), nil
}

// Authenticate verifies the password and, on success, touches last login in
// the same transaction. An unknown username is ErrUserNotFound; a wrong
// password is (false, nil) and changes nothing.
func (d *Directory) Authenticate(ctx context.Context, username, password string) (bool, error) {
	check := func(hash string) (bool, error) {
		start := time.Now()
		ok, err := d.hasher.Verify(password, hash)
		metrics.PasswordHashDurationSeconds.WithLabelValues("verify").Observe(time.Since(start).Seconds())
		if err != nil {
			return false, commonerrors.ErrHashFailed.WithCause(err)
		}
		return ok, nil
	}

	ok, err := d.repo.Authenticate(ctx, username, check, d.clock.Now())
	switch {
	case errors.Is(err, commonerrors.ErrUserNotFound):
		d.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_user_not_found",
		}).Warn("login failed: user not found")
		metrics.AuthenticationsTotal.WithLabelValues("unknown_user").Inc()
		return false, err
	case err != nil:
		d.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_failed",
		}).Errorf("login failed: %v", err)
		metrics.AuthenticationsTotal.WithLabelValues("error").Inc()
		return false, storageError(err)
	case !ok:
		d.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.AuthenticationsTotal.WithLabelValues("invalid_password").Inc()
		return false, nil
	}

	d.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_success",
	}).Info("login success")
	metrics.AuthenticationsTotal.WithLabelValues("success").Inc()
	return true, nil
}

func (d *Directory) All(ctx context.Context) ([]domain.Summary, error) {
	users, err := d.repo.List(ctx)
	if err != nil {
		d.log.WithFields(ctx, logger.Fields{"action": "list_users_failed"}).Errorf("list users failed: %v", err)
		return nil, storageError(err)
	}
	return users, nil
}

func (d *Directory) Get(ctx context.Context, username string) (domain.Detail, error) {
	user, err := d.repo.Get(ctx, username)
	if err != nil {
		if !errors.Is(err, commonerrors.ErrUserNotFound) {
			d.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "get_user_failed",
			}).Errorf("get user failed: %v", err)
		}
		return domain.Detail{}, storageError(err)
	}
	return user, nil
}

// MessagesFrom lists what username sent, each with the recipient's profile.
// It fails with ErrUserNotFound only when the user does not exist.
func (d *Directory) MessagesFrom(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return d.correspondence(ctx, username, "messages_from", d.repo.MessagesFrom)
}

// MessagesTo lists what username received, each with the sender's profile.
func (d *Directory) MessagesTo(ctx context.Context, username string) ([]domain.Correspondence, error) {
	return d.correspondence(ctx, username, "messages_to", d.repo.MessagesTo)
}

func (d *Directory) correspondence(
	ctx context.Context,
	username string,
	action string,
	list func(context.Context, string) ([]domain.Correspondence, error),
) ([]domain.Correspondence, error) {
	exists, err := d.repo.Exists(ctx, username)
	if err != nil {
		d.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   action + "_failed",
		}).Errorf("user lookup failed: %v", err)
		return nil, storageError(err)
	}
	if !exists {
		return nil, commonerrors.ErrUserNotFound
	}

	messages, err := list(ctx, username)
	if err != nil {
		d.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   action + "_failed",
		}).Errorf("list messages failed: %v", err)
		return nil, storageError(err)
	}
	return messages, nil
}

// storageError passes domain errors through and wraps anything else so the
// boundary renders it as an internal failure.
func storageError(err error) error {
	if commonerrors.IsDomainError(err) {
		return err
	}
	return commonerrors.ErrDatabaseError.WithCause(err)
}
