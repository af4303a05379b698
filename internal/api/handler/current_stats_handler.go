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
	msgCurrentStatsNotFound = "CurrentStats doesn't exist"
	msgCurrentStatsPatch    = "Request body must contain either 'user_id' 'current_weight', 'goal_weight', 'display_name', or 'contest_id'"
	msgCurrentStatsContest  = "Request body must contain 'contest_id'"
)

type CurrentStatsStore interface {
	List(ctx context.Context) ([]model.CurrentStats, error)
	ListByContest(ctx context.Context) ([]model.CurrentStats, error)
	Create(ctx context.Context, in model.NewCurrentStats) (*model.CurrentStats, error)
	FindByUser(ctx context.Context, userID int64) ([]model.CurrentStats, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.CurrentStats, error)
	FindByContestUser(ctx context.Context, userID, contestID int64) ([]model.CurrentStats, error)
	DisplayName(ctx context.Context, userID, contestID int64) (string, error)
	WeightPageStats(ctx context.Context, userID, contestID int64) ([]model.WeightPageStats, error)
	UpdateByUser(ctx context.Context, userID int64, set model.Assignments) (int64, error)
	UpdateByContestUser(ctx context.Context, userID, contestID int64, set model.Assignments) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByContestUser(ctx context.Context, userID, contestID int64) (int64, error)
}

type CurrentStatsHandler struct {
	stats CurrentStatsStore
}

func NewCurrentStatsHandler(stats CurrentStatsStore) *CurrentStatsHandler {
	return &CurrentStatsHandler{stats: stats}
}

func (h *CurrentStatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listStats)
	r.Get("/contests", h.listStatsByContest)
	r.Post("/", h.createStats)

	r.Route("/userId/{user_id}", func(r chi.Router) {
		r.Use(PreloadMany(msgCurrentStatsNotFound, h.loadByUser))
		r.Get("/", h.getStats)
		r.Patch("/", h.moveToContest)
		r.Delete("/", h.deleteByUser)
	})

	r.With(PreloadMany(msgCurrentStatsNotFound, h.loadByContest)).Get("/contestId/{contest_id}", h.getStats)

	r.Route("/contestUserId", func(r chi.Router) {
		byContestUser := PreloadMany(msgCurrentStatsNotFound, h.loadByContestUser)
		r.With(byContestUser).Get("/", h.getStats)
		r.With(byContestUser).Patch("/", h.updateByContestUser)
		r.With(byContestUser).Delete("/", h.deleteByContestUser)
		r.Get("/displayname", h.getDisplayName)
		r.With(PreloadMany(msgCurrentStatsNotFound, h.loadWeightPageStats)).Get("/weightPageStats", h.getWeightPageStats)
	})
}

func (h *CurrentStatsHandler) loadByUser(r *http.Request) ([]model.CurrentStats, error) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.stats.FindByUser(r.Context(), userID)
}

func (h *CurrentStatsHandler) loadByContest(r *http.Request) ([]model.CurrentStats, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.stats.FindByContest(r.Context(), contestID)
}

func (h *CurrentStatsHandler) loadWeightPageStats(r *http.Request) ([]model.WeightPageStats, error) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		return nil, err
	}
	return h.stats.WeightPageStats(r.Context(), userID, contestID)
}

func (h *CurrentStatsHandler) loadByContestUser(r *http.Request) ([]model.CurrentStats, error) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		return nil, err
	}
	return h.stats.FindByContestUser(r.Context(), userID, contestID)
}

// getDisplayName answers with a bare JSON string.
func (h *CurrentStatsHandler) getDisplayName(w http.ResponseWriter, r *http.Request) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	name, err := h.stats.DisplayName(r.Context(), userID, contestID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, msgCurrentStatsNotFound)
			return
		}
		fail(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, name)
}

func (h *CurrentStatsHandler) listStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.List(r.Context())
	respond(w, r, http.StatusOK, stats, err)
}

func (h *CurrentStatsHandler) listStatsByContest(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ListByContest(r.Context())
	respond(w, r, http.StatusOK, stats, err)
}

func (h *CurrentStatsHandler) createStats(w http.ResponseWriter, r *http.Request) {
	var req model.NewCurrentStats
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	stats, err := h.stats.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, stats, err)
}

func (h *CurrentStatsHandler) getStats(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.CurrentStats](w, r)
}

func (h *CurrentStatsHandler) getWeightPageStats(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.WeightPageStats](w, r)
}

// moveToContest only ever rewrites contest_id of the user's rows.
func (h *CurrentStatsHandler) moveToContest(w http.ResponseWriter, r *http.Request) {
	var req model.CurrentStatsContestPatch
	if !decodePatch(w, r, &req, msgCurrentStatsContest) {
		return
	}
	userID, err := pathInt(r, "user_id")
	if err == nil {
		_, err = h.stats.UpdateByUser(r.Context(), userID, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *CurrentStatsHandler) deleteByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt(r, "user_id")
	if err == nil {
		_, err = h.stats.DeleteByUser(r.Context(), userID)
	}
	respondWritten(w, r, err)
}

func (h *CurrentStatsHandler) updateByContestUser(w http.ResponseWriter, r *http.Request) {
	var req model.CurrentStatsPatch
	if !decodePatch(w, r, &req, msgCurrentStatsPatch) {
		return
	}
	userID, contestID, err := contestUserQuery(r)
	if err == nil {
		_, err = h.stats.UpdateByContestUser(r.Context(), userID, contestID, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *CurrentStatsHandler) deleteByContestUser(w http.ResponseWriter, r *http.Request) {
	userID, contestID, err := contestUserQuery(r)
	if err == nil {
		_, err = h.stats.DeleteByContestUser(r.Context(), userID, contestID)
	}
	respondWritten(w, r, err)
}
