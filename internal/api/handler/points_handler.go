package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcontest/internal/domain/model"
)

const (
	msgPointsNotFound = "Points do not exist"
	msgPointsPatch    = "Request body must contain either 'user_id', 'contest_id', 'points', 'category', 'description', or 'win_id'"
)

type PointsService interface {
	List(ctx context.Context) ([]model.Points, error)
	Create(ctx context.Context, in model.NewPoints) (*model.Points, error)
	FindByID(ctx context.Context, id int64) (*model.Points, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Points, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Points, error)
	TotalForUser(ctx context.Context, userID, contestID int64) ([]model.PointsSum, error)
	TotalForCategory(ctx context.Context, userID, contestID int64, category string) ([]model.PointsSum, error)
	Standings(ctx context.Context, contestID int64) ([]model.Standing, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type PointsHandler struct {
	points PointsService
}

func NewPointsHandler(points PointsService) *PointsHandler {
	return &PointsHandler{points: points}
}

func (h *PointsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPoints)
	r.Post("/", h.createPoints)
	r.With(PreloadMany(msgPointsNotFound, h.loadByUser)).Get("/userId/{user_id}", h.getPointsList)
	r.With(PreloadMany(msgPointsNotFound, h.loadByContest)).Get("/contestId/{contest_id}", h.getPointsList)

	r.Route("/id/{id}", func(r chi.Router) {
		r.Use(PreloadOne(msgPointsNotFound, h.loadByID))
		r.Get("/", h.getPoints)
		r.Patch("/", h.updatePoints)
		r.Delete("/", h.deletePoints)
	})

	r.Get("/totalUserPoints", h.totalUserPoints)
	r.Get("/categoryPoints", h.categoryPoints)
	r.Get("/standings", h.standings)
}

func (h *PointsHandler) loadByID(r *http.Request) (*model.Points, error) {
	id, err := pathInt(r, "id")
	if err != nil {
		return nil, err
	}
	return h.points.FindByID(r.Context(), id)
}

func (h *PointsHandler) loadByUser(r *http.Request) ([]model.Points, error) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.points.FindByUser(r.Context(), userID)
}

func (h *PointsHandler) loadByContest(r *http.Request) ([]model.Points, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.points.FindByContest(r.Context(), contestID)
}

func (h *PointsHandler) listPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.points.List(r.Context())
	respond(w, r, http.StatusOK, points, err)
}

func (h *PointsHandler) createPoints(w http.ResponseWriter, r *http.Request) {
	var req model.NewPoints
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	points, err := h.points.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, points, err)
}

func (h *PointsHandler) getPoints(w http.ResponseWriter, r *http.Request) {
	respondLoaded[*model.Points](w, r)
}

func (h *PointsHandler) getPointsList(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.Points](w, r)
}

func (h *PointsHandler) updatePoints(w http.ResponseWriter, r *http.Request) {
	var req model.PointsPatch
	if !decodePatch(w, r, &req, msgPointsPatch) {
		return
	}
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.points.Update(r.Context(), id, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *PointsHandler) deletePoints(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.points.Delete(r.Context(), id)
	}
	respondWritten(w, r, err)
}

// totalUserPoints answers [{"sum": "<n>"}], with a null sum when nothing matched.
func (h *PointsHandler) totalUserPoints(w http.ResponseWriter, r *http.Request) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	sum, err := h.points.TotalForUser(r.Context(), userID, contestID)
	respond(w, r, http.StatusOK, sum, err)
}

func (h *PointsHandler) categoryPoints(w http.ResponseWriter, r *http.Request) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	sum, err := h.points.TotalForCategory(r.Context(), userID, contestID, r.URL.Query().Get("category"))
	respond(w, r, http.StatusOK, sum, err)
}

func (h *PointsHandler) standings(w http.ResponseWriter, r *http.Request) {
	contestID, err := queryInt(r, "contest_id")
	if err != nil {
		fail(w, r, err)
		return
	}
	standings, err := h.points.Standings(r.Context(), contestID)
	respond(w, r, http.StatusOK, standings, err)
}
