package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcontest/internal/domain/model"
)

const (
	msgContestUserNotFound = "ContestUser doesn't exist"
	msgContestUserPatch    = "Request body must contain either 'user_id' or 'contest_id'"
)

type ContestUserStore interface {
	List(ctx context.Context) ([]model.ContestUser, error)
	Create(ctx context.Context, in model.NewContestUser) (*model.ContestUser, error)
	FindByID(ctx context.Context, id int64) (*model.ContestUser, error)
	FindByUser(ctx context.Context, userID int64) ([]model.ContestUser, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.ContestUser, error)
	UserIDsByContest(ctx context.Context, contestID int64) ([]model.UserID, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	UpdateByUser(ctx context.Context, userID int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

type ContestUserHandler struct {
	members ContestUserStore
}

func NewContestUserHandler(members ContestUserStore) *ContestUserHandler {
	return &ContestUserHandler{members: members}
}

func (h *ContestUserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listMembers)
	r.Post("/", h.createMember)

	r.Route("/id/{id}", func(r chi.Router) {
		r.Use(PreloadOne(msgContestUserNotFound, h.loadByID))
		r.Get("/", h.getMember)
		r.Patch("/", h.updateMember)
		r.Delete("/", h.deleteMember)
	})

	r.Route("/userId/{user_id}", func(r chi.Router) {
		r.Use(PreloadMany(msgContestUserNotFound, h.loadByUser))
		r.Get("/", h.getMembers)
		r.Patch("/", h.updateByUser)
		r.Delete("/", h.deleteByUser)
	})

	r.With(PreloadMany(msgContestUserNotFound, h.loadByContest)).Get("/contestId/{contest_id}", h.getMembers)
	r.With(PreloadMany(msgContestUserNotFound, h.loadUserIDs)).Get("/contestId/{contest_id}/userIds", h.getUserIDs)
}

func (h *ContestUserHandler) loadByID(r *http.Request) (*model.ContestUser, error) {
	id, err := pathInt(r, "id")
	if err != nil {
		return nil, err
	}
	return h.members.FindByID(r.Context(), id)
}

func (h *ContestUserHandler) loadByUser(r *http.Request) ([]model.ContestUser, error) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.members.FindByUser(r.Context(), userID)
}

func (h *ContestUserHandler) loadByContest(r *http.Request) ([]model.ContestUser, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.members.FindByContest(r.Context(), contestID)
}

func (h *ContestUserHandler) loadUserIDs(r *http.Request) ([]model.UserID, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.members.UserIDsByContest(r.Context(), contestID)
}

func (h *ContestUserHandler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	respond(w, r, http.StatusOK, members, err)
}

func (h *ContestUserHandler) createMember(w http.ResponseWriter, r *http.Request) {
	var req model.NewContestUser
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	member, err := h.members.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, member, err)
}

func (h *ContestUserHandler) getMember(w http.ResponseWriter, r *http.Request) {
	respondLoaded[*model.ContestUser](w, r)
}

func (h *ContestUserHandler) getMembers(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.ContestUser](w, r)
}

func (h *ContestUserHandler) getUserIDs(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.UserID](w, r)
}

func (h *ContestUserHandler) updateMember(w http.ResponseWriter, r *http.Request) {
	var req model.ContestUserPatch
	if !decodePatch(w, r, &req, msgContestUserPatch) {
		return
	}
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.members.Update(r.Context(), id, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *ContestUserHandler) updateByUser(w http.ResponseWriter, r *http.Request) {
	var req model.ContestUserPatch
	if !decodePatch(w, r, &req, msgContestUserPatch) {
		return
	}
	userID, err := pathInt(r, "user_id")
	if err == nil {
		_, err = h.members.UpdateByUser(r.Context(), userID, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *ContestUserHandler) deleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.members.Delete(r.Context(), id)
	}
	respondWritten(w, r, err)
}

func (h *ContestUserHandler) deleteByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "user_id")
	if err == nil {
		_, err = h.members.DeleteByUser(r.Context(), userID)
	}
	respondWritten(w, r, err)
}
