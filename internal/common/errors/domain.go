package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	TraceID() string
	Unwrap() error
	WithCause(cause error) DomainError
	WithMessage(message string) DomainError
	WithTraceID(traceID string) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	traceID  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) TraceID() string {
	return e.traceID
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches any domain error carrying the same code, so catalogue values
// still match after WithCause/WithMessage.
func (e *domainError) Is(target error) bool {
	t, ok := target.(*domainError)
	if !ok {
		return false
	}
	return e.code == t.code
}

func (e *domainError) clone() *domainError {
	c := *e
	return &c
}

func (e *domainError) WithCause(cause error) DomainError {
	c := e.clone()
	c.cause = cause
	return c
}

func (e *domainError) WithMessage(message string) DomainError {
	c := e.clone()
	c.message = message
	return c
}

func (e *domainError) WithTraceID(traceID string) DomainError {
	c := e.clone()
	c.traceID = traceID
	return c
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidJWTSecret = NewDomainError(
		"INVALID_JWT_SECRET",
		CategoryValidation,
		http.StatusInternalServerError,
		"SECRET_KEY must be at least 32 bytes",
	)

	ErrInvalidConfig = NewDomainError(
		"INVALID_CONFIG",
		CategoryValidation,
		http.StatusInternalServerError,
		"invalid configuration value",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrMessageNotFound = NewDomainError(
		"MESSAGE_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"message not found",
	)

	ErrDuplicateUser = NewDomainError(
		"DUPLICATE_USER",
		CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrUnauthorized = NewDomainError(
		"UNAUTHORIZED",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"unauthorized",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid password/username combination",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is not valid",
	)

	ErrValidation = NewDomainError(
		"VALIDATION_FAILED",
		CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrInvalidJSON = NewDomainError(
		"INVALID_JSON",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid json",
	)

	ErrRequestTooLarge = NewDomainError(
		"REQUEST_TOO_LARGE",
		CategoryValidation,
		http.StatusRequestEntityTooLarge,
		"request body too large",
	)

	ErrDatabaseError = NewDomainError(
		"DATABASE_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)

	ErrStorageUnavailable = NewDomainError(
		"STORAGE_UNAVAILABLE",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"storage temporarily unavailable",
	)

	ErrHashFailed = NewDomainError(
		"HASH_FAILED",
		CategoryInternal,
		http.StatusInternalServerError,
		"password hashing failed",
	)

	ErrTokenIssueFailed = NewDomainError(
		"TOKEN_ISSUE_FAILED",
		CategoryInternal,
		http.StatusInternalServerError,
		"failed to issue token",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
