package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/AlibekovAA/messenger/backend/internal/common/clock"
	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/message/domain"
	"github.com/AlibekovAA/messenger/backend/internal/message/repository"
	"github.com/AlibekovAA/messenger/backend/internal/observability/metrics"
)

type Ledger struct {
	repo  repository.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewLedger(repo repository.Repository, clk clock.Clock, log *logger.Logger) *Ledger {
	return &Ledger{repo: repo, clock: clk, log: log}
}

// Create stores a new unread message sent now. Both users must exist.
func (l *Ledger) Create(ctx context.Context, from, to, body string) (domain.Message, error) {
	if err := validateMessage(from, to, body); err != nil {
		l.log.WithFields(ctx, logger.Fields{
			"from":   from,
			"to":     to,
			"action": "message_validation_failed",
		}).Warnf("message rejected: %v", err)
		return domain.Message{}, err
	}

	msg, err := l.repo.Create(ctx, domain.Message{
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       l.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			l.log.WithFields(ctx, logger.Fields{
				"from":   from,
				"to":     to,
				"action": "message_recipient_not_found",
			}).Warn("message rejected: unknown participant")
			return domain.Message{}, err
		}
		l.log.WithFields(ctx, logger.Fields{
			"from":   from,
			"to":     to,
			"action": "message_create_failed",
		}).Errorf("create message failed: %v", err)
		return domain.Message{}, storageError(err)
	}

	l.log.WithFields(ctx, logger.Fields{
		"message_id": msg.ID,
		"from":       from,
		"to":         to,
		"action":     "message_created",
	}).Info("message created")
	metrics.MessagesCreated.Inc()

	return msg, nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (domain.Detail, error) {
	msg, err := l.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, commonerrors.ErrMessageNotFound) {
			l.log.WithFields(ctx, logger.Fields{
				"message_id": id,
				"action":     "get_message_failed",
			}).Errorf("get message failed: %v", err)
		}
		return domain.Detail{}, storageError(err)
	}
	return msg, nil
}

// MarkRead stamps the read time on the first call. Later calls succeed and
// return the original timestamp.
func (l *Ledger) MarkRead(ctx context.Context, id int64) (domain.ReadReceipt, error) {
	now := l.clock.Now()
	receipt, err := l.repo.MarkRead(ctx, id, now)
	if err != nil {
		if !errors.Is(err, commonerrors.ErrMessageNotFound) {
			l.log.WithFields(ctx, logger.Fields{
				"message_id": id,
				"action":     "mark_read_failed",
			}).Errorf("mark read failed: %v", err)
		}
		return domain.ReadReceipt{}, storageError(err)
	}

	if receipt.ReadAt.Equal(now) {
		metrics.MessagesMarkedRead.Inc()
		l.log.WithFields(ctx, logger.Fields{
			"message_id": id,
			"action":     "message_marked_read",
		}).Info("message marked read")
	}
	return receipt, nil
}

func validateMessage(from, to, body string) error {
	if from == "" || to == "" {
		return commonerrors.ErrValidation.WithMessage("sender and recipient are required")
	}
	if from == to {
		return commonerrors.ErrValidation.WithMessage("cannot send a message to yourself")
	}
	if strings.TrimSpace(body) == "" {
		return commonerrors.ErrValidation.WithMessage("body must not be empty")
	}
	if utf8.RuneCountInString(body) > constants.MaxMessageLength {
		return commonerrors.ErrValidation.WithMessage("body is too long")
	}
	return nil
}

func storageError(err error) error {
	if commonerrors.IsDomainError(err) {
		return err
	}
	return commonerrors.ErrDatabaseError.WithCause(err)
}
