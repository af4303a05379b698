package handler

import (
	"net/http"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type patcher interface {
	Assignments() model.Assignments
}

// respond writes v with status, or hands err to fail.
func respond(w http.ResponseWriter, r *http.Request, status int, v interface{}, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}
	common.RespondWithJSON(w, status, v)
}

// respondWritten answers a PATCH or DELETE that produced err.
func respondWritten(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		fail(w, r, err)
		return
	}
	common.RespondNoContent(w)
}

// decodePatch decodes a PATCH body into p. When the body is malformed or sets no truthy
// field it answers the request and returns false.
func decodePatch(w http.ResponseWriter, r *http.Request, p patcher, message string) bool {
	if err := decodeJSON(r, p); err != nil {
		fail(w, r, err)
		return false
	}
	if !p.Assignments().HasTruthy() {
		common.RespondWithError(w, http.StatusBadRequest, message)
		return false
	}
	return true
}

// respondLoaded writes the value put in place by PreloadOne or PreloadMany.
func respondLoaded[T any](w http.ResponseWriter, r *http.Request) {
	v, ok := Loaded[T](r)
	if !ok {
		fail(w, r, errMissingPreload)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, v)
}

// respondLoadedAsList wraps a single preloaded record in a one-element array.
func respondLoadedAsList[T any](w http.ResponseWriter, r *http.Request) {
	v, ok := Loaded[*T](r)
	if !ok {
		fail(w, r, errMissingPreload)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, []T{*v})
}
