package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"missing field", &MissingFieldError{Field: "weight"}, http.StatusBadRequest},
		{"invalid input", Invalid("Invalid '%s' parameter", "id"), http.StatusBadRequest},
		{"not found", NotFound("Win does not exist"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", NotFound("x")), http.StatusNotFound},
		{"unauthorized", Unauthorized("password does not match"), http.StatusUnauthorized},
		{"constraint", ClassifyDBError("op", &pgconn.PgError{Code: "23503"}), http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
		})
	}
}

func TestMissingFieldErrorMessage(t *testing.T) {
	err := &MissingFieldError{Field: "contest_id"}
	assert.Equal(t, "Missing 'contest_id' in request body", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClassifyDBError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", Message: "insert violates foreign key", ConstraintName: "weighin_user_id_fkey"}
	err := ClassifyDBError("pgWeighinRepository.Insert", fk)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)

	other := ClassifyDBError("op", &pgconn.PgError{Code: "42P01"})
	assert.NotErrorIs(t, other, ErrConstraintViolation)
	assert.Contains(t, other.Error(), "op: ")

	assert.NoError(t, ClassifyDBError("op", nil))
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, http.StatusNotFound, "Contest doesn't exist")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Contest doesn't exist"}}`, w.Body.String())
}
