package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("requested resource not found")
	ErrUnauthorized        = errors.New("unauthorized access")
	ErrValidation          = errors.New("validation failed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotAllowedByCORS    = errors.New("Not allowed by CORS")
)

// MissingFieldError reports the first required body field that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing '%s' in request body", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrValidation }

// InvalidInputError is a 400 carrying a client-facing message verbatim.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrValidation }

func Invalid(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError carries the resource-specific 404 message.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NotFound(message string) error {
	return &NotFoundError{Message: message}
}

// UnauthorizedError carries the 401 message.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

func Unauthorized(message string) error {
	return &UnauthorizedError{Message: message}
}

// ConstraintError wraps a storage-level integrity failure.
type ConstraintError struct {
	Op  string
	Err *pgconn.PgError
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Err.Message, e.Err.ConstraintName)
}

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraintViolation }

func (e *ConstraintError) Unwrap() error { return e.Err }

// ClassifyDBError turns integrity violations (SQLSTATE class 23) into ConstraintError and
// wraps everything else with op.
func ClassifyDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "23" {
		return &ConstraintError{Op: op, Err: pgErr}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// HTTPStatusFromError maps domain errors to HTTP status codes. Constraint violations fall
// through to 500 and the terminal error responder.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
