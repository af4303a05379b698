package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

const (
	msgUserNotFound = "User doesn't exist"
	msgUserPatch    = "Request body must contain either 'password', 'display_name', or 'username'"
)

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	ListSummaries(ctx context.Context) ([]model.UserSummary, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, in model.NewUser) (*model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Login(ctx context.Context, username, password string) (*model.LoginResult, error)
}

type UserHandler struct {
	userService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Get("/admin", h.listUserSummaries)
	r.Post("/", h.createUser)
	r.Get("/login/userAuth", h.login)

	byUsername := PreloadOne(msgUserNotFound, h.loadByUsername)
	r.With(byUsername).Get("/username/{username}", h.getUser)
	r.With(byUsername).Get("/username/{username}/id", h.getUserID)

	for _, pattern := range []string{"/{user_id}", "/id/{user_id}"} {
		r.Route(pattern, func(r chi.Router) {
			r.Use(PreloadOne(msgUserNotFound, h.loadByID))
			r.Get("/", h.getUser)
			r.Patch("/", h.updateUser)
			r.Delete("/", h.deleteUser)
		})
	}
}

func (h *UserHandler) loadByUsername(r *http.Request) (*model.User, error) {
	return h.userService.FindByUsername(r.Context(), chi.URLParam(r, "username"))
}

func (h *UserHandler) loadByID(r *http.Request) (*model.User, error) {
	id, err := pathInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.userService.FindByID(r.Context(), id)
}

func (h *UserHandler) getUserID(w http.ResponseWriter, r *http.Request) {
	user, ok := Loaded[*model.User](r)
	if !ok {
		fail(w, r, errMissingPreload)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, model.UserID{UserID: user.UserID})
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.userService.Login(r.Context(), q.Get("username"), q.Get("password"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		fail(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	respond(w, r, http.StatusOK, users, err)
}

func (h *UserHandler) listUserSummaries(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListSummaries(r.Context())
	respond(w, r, http.StatusOK, users, err)
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req model.NewUser
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	user, err := h.userService.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, user, err)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	respondLoaded[*model.User](w, r)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req model.UserPatch
	if !decodePatch(w, r, &req, msgUserPatch) {
		return
	}
	id, err := pathInt(r, "user_id")
	if err == nil {
		_, err = h.userService.Update(r.Context(), id, req)
	}
	respondWritten(w, r, err)
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "user_id")
	if err == nil {
		_, err = h.userService.Delete(r.Context(), id)
	}
	respondWritten(w, r, err)
}
