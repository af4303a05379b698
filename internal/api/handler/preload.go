package handler

import (
	"context"
	"errors"
	"net/http"

	"fitcontest/internal/common"
)

type loadedKey[T any] struct{}

// PreloadOne answers 404 with notFound unless load finds the record, and otherwise makes
// it available to the route handler through Loaded.
func PreloadOne[T any](notFound string, load func(r *http.Request) (*T, error)) func(http.Handler) http.Handler {
	return preload(notFound, load, func(v *T) bool { return v != nil })
}

// PreloadMany is PreloadOne for lookups that yield a sequence; an empty sequence is absent.
func PreloadMany[T any](notFound string, load func(r *http.Request) ([]T, error)) func(http.Handler) http.Handler {
	return preload(notFound, load, func(v []T) bool { return len(v) > 0 })
}

func preload[V any](notFound string, load func(r *http.Request) (V, error), present func(V) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := load(r)
			if errors.Is(err, common.ErrNotFound) || (err == nil && !present(v)) {
				common.RespondWithError(w, http.StatusNotFound, notFound)
				return
			}
			if err != nil {
				fail(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), loadedKey[V]{}, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Loaded returns the value stored by PreloadOne (T is a pointer) or PreloadMany (T is a slice).
func Loaded[T any](r *http.Request) (T, bool) {
	v, ok := r.Context().Value(loadedKey[T]{}).(T)
	return v, ok
}
