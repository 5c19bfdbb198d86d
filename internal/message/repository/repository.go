package repository

import (
	"context"
	"time"

	"github.com/AlibekovAA/messenger/backend/internal/message/domain"
)

// Repository is the message ledger's storage. Unknown ids fail with
// commonerrors.ErrMessageNotFound; Create with an unknown participant fails
// with commonerrors.ErrUserNotFound.
type Repository interface {
	Create(ctx context.Context, msg domain.Message) (domain.Message, error)
	Get(ctx context.Context, id int64) (domain.Detail, error)
	// MarkRead stamps readAt only if the message has not been read yet and
	// returns the stored value either way.
	MarkRead(ctx context.Context, id int64, readAt time.Time) (domain.ReadReceipt, error)
}
