package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type WorkoutRepository interface {
	List(ctx context.Context) ([]model.Workout, error)
	Create(ctx context.Context, in model.NewWorkout) (*model.Workout, error)
	FindByID(ctx context.Context, id int64) (*model.Workout, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Workout, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Workout, error)
	// Dates lists workout dates for a user in a contest, optionally restricted to one category.
	Dates(ctx context.Context, userID, contestID int64, category string) ([]model.WorkoutDate, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type pgWorkoutRepository struct {
	db *sql.DB
}

func NewPgWorkoutRepository(db *sql.DB) WorkoutRepository {
	return &pgWorkoutRepository{db: db}
}

const workoutColumns = `id, user_id, contest_id, category, date_created`

func scanWorkout(s rowScanner) (model.Workout, error) {
	var w model.Workout
	err := s.Scan(&w.ID, &w.UserID, &w.ContestID, &w.Category, &w.DateCreated)
	return w, err
}

func (r *pgWorkoutRepository) List(ctx context.Context) ([]model.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_tracking ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgWorkoutRepository.List", query, scanWorkout)
}

func (r *pgWorkoutRepository) Create(ctx context.Context, in model.NewWorkout) (*model.Workout, error) {
	query := `INSERT INTO workout_tracking (user_id, contest_id, category)
	          VALUES ($1, $2, $3)
	          RETURNING ` + workoutColumns
	w, err := scanWorkout(r.db.QueryRowContext(ctx, query, *in.UserID, *in.ContestID, *in.Category))
	if err != nil {
		return nil, common.ClassifyDBError("pgWorkoutRepository.Create", err)
	}
	return &w, nil
}

func (r *pgWorkoutRepository) FindByID(ctx context.Context, id int64) (*model.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_tracking WHERE id = $1`
	w, err := scanWorkout(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgWorkoutRepository.FindByID: %w", err)
	}
	return &w, nil
}

func (r *pgWorkoutRepository) FindByUser(ctx context.Context, userID int64) ([]model.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_tracking WHERE user_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgWorkoutRepository.FindByUser", query, scanWorkout, userID)
}

func (r *pgWorkoutRepository) FindByContest(ctx context.Context, contestID int64) ([]model.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_tracking WHERE contest_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgWorkoutRepository.FindByContest", query, scanWorkout, contestID)
}

func (r *pgWorkoutRepository) Dates(ctx context.Context, userID, contestID int64, category string) ([]model.WorkoutDate, error) {
	query := `SELECT date_created FROM workout_tracking
	          WHERE user_id = $1 AND contest_id = $2 AND ($3 = '' OR category = $3)
	          ORDER BY date_created`
	return queryList(ctx, r.db, "pgWorkoutRepository.Dates", query, func(s rowScanner) (model.WorkoutDate, error) {
		var d model.WorkoutDate
		err := s.Scan(&d.DateCreated)
		return d, err
	}, userID, contestID, category)
}

func (r *pgWorkoutRepository) Update(ctx context.Context, id int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgWorkoutRepository.Update", "workout_tracking", set, []string{"id"}, id)
}

func (r *pgWorkoutRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgWorkoutRepository.Delete", "workout_tracking", []string{"id"}, id)
}
