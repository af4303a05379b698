package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fitcontest/internal/domain/model"
)

const (
	msgWorkoutsNotFound = "Workouts do not exist"
	msgWorkoutNotFound  = "Workout does not exist"
	msgWorkoutPatch     = "Request body must contain either 'user_id', 'contest_id', or 'category'"
)

type WorkoutStore interface {
	List(ctx context.Context) ([]model.Workout, error)
	Create(ctx context.Context, in model.NewWorkout) (*model.Workout, error)
	FindByID(ctx context.Context, id int64) (*model.Workout, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Workout, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Workout, error)
	Dates(ctx context.Context, userID, contestID int64, category string) ([]model.WorkoutDate, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type WorkoutHandler struct {
	workouts WorkoutStore
}

func NewWorkoutHandler(workouts WorkoutStore) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

func (h *WorkoutHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listWorkouts)
	r.Post("/", h.createWorkout)
	r.With(PreloadMany(msgWorkoutsNotFound, h.loadByUser)).Get("/userId/{user_id}", h.getWorkouts)
	r.With(PreloadMany(msgWorkoutsNotFound, h.loadByContest)).Get("/contestId/{contest_id}", h.getWorkouts)

	r.Route("/id/{id}", func(r chi.Router) {
		r.Use(PreloadOne(msgWorkoutNotFound, h.loadByID))
		r.Get("/", h.getWorkout)
		r.Patch("/", h.updateWorkout)
		r.Delete("/", h.deleteWorkout)
	})

	r.Get("/getWorkoutData", h.getWorkoutData)
	r.With(PreloadMany(msgWorkoutsNotFound, h.loadDates)).Get("/getDates", h.getDates)
}

func (h *WorkoutHandler) loadByID(r *http.Request) (*model.Workout, error) {
	id, err := pathInt(r, "id")
	if err != nil {
		return nil, err
	}
	return h.workouts.FindByID(r.Context(), id)
}

func (h *WorkoutHandler) loadByUser(r *http.Request) ([]model.Workout, error) {
	userID, err := pathInt(r, "user_id")
	if err != nil {
		return nil, err
	}
	return h.workouts.FindByUser(r.Context(), userID)
}

func (h *WorkoutHandler) loadByContest(r *http.Request) ([]model.Workout, error) {
	contestID, err := pathInt(r, "contest_id")
	if err != nil {
		return nil, err
	}
	return h.workouts.FindByContest(r.Context(), contestID)
}

// loadDates lists workout dates of every category for the user_id and contest_id query.
func (h *WorkoutHandler) loadDates(r *http.Request) ([]model.WorkoutDate, error) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		return nil, err
	}
	return h.workouts.Dates(r.Context(), userID, contestID, "")
}

func (h *WorkoutHandler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.workouts.List(r.Context())
	respond(w, r, http.StatusOK, workouts, err)
}

func (h *WorkoutHandler) createWorkout(w http.ResponseWriter, r *http.Request) {
	var req model.NewWorkout
	if err := decodeRequired(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	workout, err := h.workouts.Create(r.Context(), req)
	respond(w, r, http.StatusCreated, workout, err)
}

func (h *WorkoutHandler) getWorkout(w http.ResponseWriter, r *http.Request) {
	respondLoadedAsList[model.Workout](w, r)
}

func (h *WorkoutHandler) getWorkouts(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.Workout](w, r)
}

func (h *WorkoutHandler) getDates(w http.ResponseWriter, r *http.Request) {
	respondLoaded[[]model.WorkoutDate](w, r)
}

func (h *WorkoutHandler) updateWorkout(w http.ResponseWriter, r *http.Request) {
	var req model.WorkoutPatch
	if !decodePatch(w, r, &req, msgWorkoutPatch) {
		return
	}
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.workouts.Update(r.Context(), id, req.Assignments())
	}
	respondWritten(w, r, err)
}

func (h *WorkoutHandler) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err == nil {
		_, err = h.workouts.Delete(r.Context(), id)
	}
	respondWritten(w, r, err)
}

// getWorkoutData lists dates for one category; an empty result is still a 200.
func (h *WorkoutHandler) getWorkoutData(w http.ResponseWriter, r *http.Request) {
	userID, contestID, err := contestUserQuery(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	dates, err := h.workouts.Dates(r.Context(), userID, contestID, r.URL.Query().Get("category"))
	respond(w, r, http.StatusOK, dates, err)
}
