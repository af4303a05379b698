package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gosimple/slug"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

const (
	msgContestNotFound = "Contest doesn't exist"
	msgContestPatch    = "Request body must contain either 'date_start', 'date_end', 'contest_name', or 'weighin_day'"
)

type ContestStore interface {
	List(ctx context.Context) ([]model.Contest, error)
	Create(ctx context.Context, in model.NewContest) (*model.Contest, error)
	FindByID(ctx context.Context, id int64) (*model.Contest, error)
	FindByName(ctx context.Context, name string) ([]model.Contest, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type ContestHandler struct {
	contests ContestStore
}

func NewContestHandler(contests ContestStore) *ContestHandler {
	return &ContestHandler{contests: contests}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listContests)
	r.Post("/", h.createContest)

	byName := PreloadMany(msgContestNotFound, h.loadByName)
	r.With(byName).Get("/contestName/{contest_name}", h.getContests)
	r.With(byName).Get("/contestName/{contest_name}/id", h.getContestID)
	r.With(PreloadMany(msgContestNotFound, h.loadBySlug)).Get("/slug/{slug}", h.getContests)

	for _, pattern := range []string{"/{contest_id}", "/id/{contest_id}"} {
		r.Route(pattern, func(r chi.Router) {
			r.Use(PreloadOne(msgContestNotFound, h.loadByID))
			r.Get("/", h.getContest)
			r.Patch("/", h.updateContest)
			r.Delete("/", h.deleteContest)
		})
	}
}

func (h *ContestHandler) loadByName(r *http.Request) ([]model.Contest, error) {
	return h.contests.FindByName(r.Context(), chi.URLParam(r, "contest_name"))
}

func (h *ContestHandler) loadByID(r *http.Request) (*model.Contest, error) {
	id, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.contests.FindByID(r.Context(), id)
}

// loadBySlug matches contests whose slugified name equals the path slug.
func (h *ContestHandler) loadBySlug(r *http.Request) ([]model.Contest, error) {
	want := slug.Make(chi.URLParam(r, "slug"))
	all, err := h.contests.List(r.Context())
	if err != nil {
		return nil, err
	}
	matched := make([]model.Contest, 0, 1)
	for _, c := range all {
		if slug.Make(c.ContestName) == want {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (h *ContestHandler) getContestID(w http.ResponseWriter, r *http.Request) {
	contests, ok := Loaded[[]model.Contest](r)
	if !ok {
		fail(w, r, errMissingPreload)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, model.ContestID{ContestID: contests[0].ContestID})
}

func (h *ContestHandler) listContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contests.List(r.Context())
	respond(w, r, http.StatusOK, contests, err)
}

func (h *ContestHandler) createContest(w http.ResponseWriter, r *http.Request) {
	var req model.NewContest
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	contest, err := h.contests.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, contest, err)
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	respondLoaded[*model.Contest](w, r)
}

func (h *ContestHandler) getContests(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.Contest](w, r)
}

func (h *ContestHandler) updateContest(w http.ResponseWriter, r *http.Request) {
	var req model.ContestPatch
	if !decodePatch(w, r, &req, msgContestPatch) {
		return
	}
	id, err := pathInt(r, "contest_id")
	if err == nil {
		_, err = h.contests.Update(r.Context(), id, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *ContestHandler) deleteContest(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "contest_id")
	if err == nil {
		_, err = h.contests.Delete(r.Context(), id)
	}
	respondWritten(w, r, err)
}
