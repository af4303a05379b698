package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcontest/internal/domain/model"
)

const (
	msgMeasurementsNotFound = "Measurements do not exist"
	msgMeasurementPatch     = "Request body must contain either 'user_id', 'contest_id', or 'measurement'"
)

type MeasurementStore interface {
	List(ctx context.Context) ([]model.Measurement, error)
	Create(ctx context.Context, in model.NewMeasurement) (*model.Measurement, error)
	FindByID(ctx context.Context, id int64) (*model.Measurement, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Measurement, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Measurement, error)
	Info(ctx context.Context, userID, contestID int64) ([]model.MeasurementInfo, error)
	Progress(ctx context.Context, userID int64) ([]model.Measurement, error)
	Latest(ctx context.Context, userID, contestID int64, limit int) ([]model.Measurement, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type MeasurementHandler struct {
	measurements MeasurementStore
}

func NewMeasurementHandler(measurements MeasurementStore) *MeasurementHandler {
	return &MeasurementHandler{measurements: measurements}
}

func (h *MeasurementHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listMeasurements)
	r.Post("/", h.createMeasurement)
	r.With(PreloadMany(msgMeasurementsNotFound, h.loadByUser)).Get("/userId/{user_id}", h.getMeasurements)
	r.With(PreloadMany(msgMeasurementsNotFound, h.loadByContest)).Get("/contestId/{contest_id}", h.getMeasurements)

	r.Route("/id/{id}", func(r chi.Router) {
		r.Use(PreloadOne(msgMeasurementsNotFound, h.loadByID))
		r.Get("/", h.getMeasurement)
		r.Patch("/", h.updateMeasurement)
		r.Delete("/", h.deleteMeasurement)
	})

	r.Get("/getMeasurementInfo", h.getMeasurementInfo)
	r.With(PreloadMany(msgMeasurementsNotFound, h.loadProgress)).Get("/getAdminMeasurementProgress", h.getMeasurements)
	r.Get("/latest", h.latestMeasurements)
}

func (h *MeasurementHandler) loadByID(r *http.Request) (*model.Measurement, error) {
	id, err := pathInt(r, "id")
	if err != nil {
		return nil, err
	}
	return h.measurements.FindByID(r.Context(), id)
}

func (h *MeasurementHandler) loadByUser(r *http.Request) ([]model.Measurement, error) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.measurements.FindByUser(r.Context(), userID)
}

func (h *MeasurementHandler) loadByContest(r *http.Request) ([]model.Measurement, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.measurements.FindByContest(r.Context(), contestID)
}

func (h *MeasurementHandler) loadProgress(r *http.Request) ([]model.Measurement, error) {
	userID, err := queryInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.measurements.Progress(r.Context(), userID)
}

func (h *MeasurementHandler) listMeasurements(w http.ResponseWriter, r *http.Request) {
	measurements, err := h.measurements.List(r.Context())
	respond(w, r, http.StatusOK, measurements, err)
}

func (h *MeasurementHandler) createMeasurement(w http.ResponseWriter, r *http.Request) {
	var req model.NewMeasurement
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	measurement, err := h.measurements.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, measurement, err)
}

func (h *MeasurementHandler) getMeasurement(w http.ResponseWriter, r *http.Request) {
	respondLoaded[*model.Measurement](w, r)
}

func (h *MeasurementHandler) getMeasurements(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.Measurement](w, r)
}

func (h *MeasurementHandler) updateMeasurement(w http.ResponseWriter, r *http.Request) {
	var req model.MeasurementPatch
	if !decodePatch(w, r, &req, msgMeasurementPatch) {
		return
	}
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.measurements.Update(r.Context(), id, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *MeasurementHandler) deleteMeasurement(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.measurements.Delete(r.Context(), id)
	}
	respondWritten(w, r, err)
}

func (h *MeasurementHandler) getMeasurementInfo(w http.ResponseWriter, r *http.Request) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	info, err := h.measurements.Info(r.Context(), userID, contestID)
	respond(w, r, http.StatusOK, info, err)
}

func (h *MeasurementHandler) latestMeasurements(w http.ResponseWriter, r *http.Request) {
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
	measurements, err := h.measurements.Latest(r.Context(), userID, contestID, limit)
	respond(w, r, http.StatusOK, measurements, err)
}
