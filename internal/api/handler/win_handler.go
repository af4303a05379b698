package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcontest/internal/domain/model"
)

const (
	msgWinNotFound = "Win does not exist"
	msgWinPatch    = "Request body must contain either 'win' or 'contest_id'"
)

type WinStore interface {
	List(ctx context.Context) ([]model.Win, error)
	Create(ctx context.Context, in model.NewWin) (*model.Win, error)
	FindByID(ctx context.Context, winID int64) ([]model.Win, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Win, error)
	Update(ctx context.Context, winID int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, winID int64) (int64, error)
}

type WinHandler struct {
	wins WinStore
}

func NewWinHandler(wins WinStore) *WinHandler {
	return &WinHandler{wins: wins}
}

func (h *WinHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listWins)
	r.Post("/", h.createWin)

	r.Route("/winId/{win_id}", func(r chi.Router) {
		r.Use(PreloadMany(msgWinNotFound, h.loadByWinID))
		r.Get("/", h.getWins)
		r.Patch("/", h.updateWin)
		r.Delete("/", h.deleteWin)
	})

	r.With(PreloadMany(msgWinNotFound, h.loadByContest)).Get("/contestId/{contest_id}", h.getWins)
}

func (h *WinHandler) loadByWinID(r *http.Request) ([]model.Win, error) {
	winID, err := pathInt(r, "win_id")
	if err != nil {
		return nil, err
	}
	return h.wins.FindByID(r.Context(), winID)
}

func (h *WinHandler) loadByContest(r *http.Request) ([]model.Win, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.wins.FindByContest(r.Context(), contestID)
}

func (h *WinHandler) listWins(w http.ResponseWriter, r *http.Request) {
	wins, err := h.wins.List(r.Context())
	respond(w, r, http.StatusOK, wins, err)
}

func (h *WinHandler) createWin(w http.ResponseWriter, r *http.Request) {
	var req model.NewWin
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	win, err := h.wins.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, win, err)
}

func (h *WinHandler) getWins(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.Win](w, r)
}

func (h *WinHandler) updateWin(w http.ResponseWriter, r *http.Request) {
	var req model.WinPatch
	if !decodePatch(w, r, &req, msgWinPatch) {
		return
	}
	winID, err := pathInt(r, "win_id")
	if err == nil {
		_, err = h.wins.Update(r.Context(), winID, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *WinHandler) deleteWin(w http.ResponseWriter, r *http.Request) {
	winID, err := pathInt(r, "win_id")
	if err == nil {
		_, err = h.wins.Delete(r.Context(), winID)
	}
	respondWritten(w, r, err)
}
