package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/messenger/backend/internal/observability/metrics"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	switch {
	case strings.Contains(operation, "message"):
		return "messages"
	case strings.Contains(operation, "user"):
		return "users"
	default:
		return "unknown"
	}
}

// HandleQueryError records the query duration and maps pgx.ErrNoRows to
// notFoundErr. Other failures are counted and wrapped with the operation.
func HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	return countedError(err, operation)
}

func HandleExecError(err error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	return countedError(err, operation)
}

func MeasureQueryDuration(operation string, startTime time.Time) {
	table := extractTableFromOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())
}

func countedError(err error, operation string) error {
	table := extractTableFromOperation(operation)
	metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()
	return fmt.Errorf("failed to %s: %w", operation, err)
}
