package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcontest/internal/domain/model"
)

const (
	msgWeighinsNotFound = "Weighins do not exist"
	msgWeighinPatch     = "Request body must contain either 'user_id', 'contest_id', or 'weight'"
)

type WeighinService interface {
	List(ctx context.Context) ([]model.Weighin, error)
	Create(ctx context.Context, in model.NewWeighin) (*model.Weighin, error)
	FindByID(ctx context.Context, id int64) (*model.Weighin, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Weighin, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Weighin, error)
	Latest(ctx context.Context, userID, contestID int64, limit int) ([]model.Weighin, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type WeighinHandler struct {
	weighins WeighinService
}

func NewWeighinHandler(weighins WeighinService) *WeighinHandler {
	return &WeighinHandler{weighins: weighins}
}

func (h *WeighinHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listWeighins)
	r.Post("/", h.createWeighin)
	r.With(PreloadMany(msgWeighinsNotFound, h.loadByUser)).Get("/userId/{user_id}", h.getWeighins)
	r.With(PreloadMany(msgWeighinsNotFound, h.loadByContest)).Get("/contestId/{contest_id}", h.getWeighins)

	r.Route("/id/{id}", func(r chi.Router) {
		r.Use(PreloadOne(msgWeighinsNotFound, h.loadByID))
		r.Get("/", h.getWeighin)
		r.Patch("/", h.updateWeighin)
		r.Delete("/", h.deleteWeighin)
	})

	r.Get("/latest", h.latestWeighins)
}

func (h *WeighinHandler) loadByID(r *http.Request) (*model.Weighin, error) {
	id, err := pathInt(r, "id")
	if err != nil {
		return nil, err
	}
	return h.weighins.FindByID(r.Context(), id)
}

func (h *WeighinHandler) loadByUser(r *http.Request) ([]model.Weighin, error) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.weighins.FindByUser(r.Context(), userID)
}

func (h *WeighinHandler) loadByContest(r *http.Request) ([]model.Weighin, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.weighins.FindByContest(r.Context(), contestID)
}

func (h *WeighinHandler) listWeighins(w http.ResponseWriter, r *http.Request) {
	weighins, err := h.weighins.List(r.Context())
	respond(w, r, http.StatusOK, weighins, err)
}

func (h *WeighinHandler) createWeighin(w http.ResponseWriter, r *http.Request) {
	var req model.NewWeighin
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	weighin, err := h.weighins.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, weighin, err)
}

// getWeighin answers with a one-element array.
func (h *WeighinHandler) getWeighin(w http.ResponseWriter, r *http.Request) {
	respondLoadedAsList[model.Weighin](w, r)
}

func (h *WeighinHandler) getWeighins(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.Weighin](w, r)
}

func (h *WeighinHandler) updateWeighin(w http.ResponseWriter, r *http.Request) {
	var req model.WeighinPatch
	if !decodePatch(w, r, &req, msgWeighinPatch) {
		return
	}
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.weighins.Update(r.Context(), id, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *WeighinHandler) deleteWeighin(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.weighins.Delete(r.Context(), id)
	}
	respondWritten(w, r, err)
}

func (h *WeighinHandler) latestWeighins(w http.ResponseWriter, r *http.Request) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	weighins, err := h.weighins.Latest(r.Context(), userID, contestID, limit)
	respond(w, r, http.StatusOK, weighins, err)
}
