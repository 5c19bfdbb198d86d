package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_WithCauseKeepsIdentity(t *testing.T) {
	cause := errors.New("connection reset")
	err := ErrDatabaseError.WithCause(cause)

	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, "database operation failed: connection reset", err.Error())
}

func TestDomainError_WrappedByFmt(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrUserNotFound.WithMessage("no such user: bob"))

	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "USER_NOT_FOUND", de.Code())
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus())
	assert.Equal(t, "no such user: bob", de.Message())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDomainError_WithTraceIDDoesNotMutateCatalogue(t *testing.T) {
	traced := ErrUnauthorized.WithTraceID("t-1")

	assert.Equal(t, "t-1", traced.TraceID())
	assert.Empty(t, ErrUnauthorized.TraceID())
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrInvalidToken))
	assert.False(t, IsDomainError(errors.New("plain")))
}
