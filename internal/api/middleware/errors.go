package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"fitcontest/internal/common"
)

type errorResponderKey struct{}

// ErrorResponder renders every unhandled error as a 500. In production the body carries
// no detail.
type ErrorResponder struct {
	production bool
	logger     *zap.Logger
}

func NewErrorResponder(production bool, logger *zap.Logger) *ErrorResponder {
	return &ErrorResponder{production: production, logger: logger}
}

type debugErrorResponse struct {
	Message string      `json:"message"`
	Error   interface{} `json:"error"`
}

func (e *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	e.logger.Error("request failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))

	if e.production {
		common.RespondWithError(w, http.StatusInternalServerError, "server error")
		return
	}
	common.RespondWithJSON(w, http.StatusInternalServerError, debugErrorResponse{
		Message: err.Error(),
		Error:   errorDetail(err),
	})
}

// errorDetail exposes the database error fields when there is one.
func errorDetail(err error) interface{} {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return struct{}{}
}

// Handler makes the responder reachable from handlers and turns panics into 500s.
func (e *ErrorResponder) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				e.Respond(w, r, fmt.Errorf("panic: %w", err))
			}
		}()
		ctx := context.WithValue(r.Context(), errorResponderKey{}, e)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RespondServerError renders err with the responder installed by Handler, falling back
// to the production body.
func RespondServerError(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := r.Context().Value(errorResponderKey{}).(*ErrorResponder); ok {
		e.Respond(w, r, err)
		return
	}
	common.RespondWithError(w, http.StatusInternalServerError, "server error")
}
