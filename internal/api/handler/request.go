package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"fitcontest/internal/api/middleware"
	"fitcontest/internal/common"
)

var validate = newValidator()

var errMissingPreload = errors.New("route registered without preload")

// newValidator reports fields by their JSON name so messages match the request body.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.Invalid("Invalid request payload: %s", err.Error())
	}
	return nil
}

// decodeRequired decodes the body into dst and reports the first required field, in
// declaration order, that is absent or null.
func decodeRequired(r *http.Request, dst interface{}) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &common.MissingFieldError{Field: verrs[0].Field()}
		}
		return err
	}
	return nil
}

func pathInt(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, common.Invalid("Invalid '%s' parameter", name)
	}
	return v, nil
}

func queryInt(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0, common.Invalid("Invalid '%s' parameter", name)
	}
	return v, nil
}

// contestUserQuery reads the user_id and contest_id query pair.
func contestUserQuery(r *http.Request) (int64, int64, error) {
	userID, err := queryInt(r, "user_id")
	if err != nil {
		return 0, 0, err
	}
	contestID, err := queryInt(r, "contest_id")
	if err != nil {
		return 0, 0, err
	}
	return userID, contestID, nil
}

const defaultLatestLimit = 2

func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLatestLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, common.Invalid("Invalid 'limit' parameter")
	}
	return n, nil
}

// fail answers client errors with their message and hands everything else to the
// terminal error responder.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		middleware.RespondServerError(w, r, err)
		return
	}
	common.RespondWithError(w, status, err.Error())
}
