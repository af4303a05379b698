package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type MeasurementRepository interface {
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

type pgMeasurementRepository struct {
	db *sql.DB
}

func NewPgMeasurementRepository(db *sql.DB) MeasurementRepository {
	return &pgMeasurementRepository{db: db}
}

const measurementColumns = `id, user_id, contest_id, measurement, date_created`

func scanMeasurement(s rowScanner) (model.Measurement, error) {
	var m model.Measurement
	err := s.Scan(&m.ID, &m.UserID, &m.ContestID, &m.Measurement, &m.DateCreated)
	return m, err
}

func (r *pgMeasurementRepository) List(ctx context.Context) ([]model.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements ORDER BY user_id, id`
	return queryList(ctx, r.db, "pgMeasurementRepository.List", query, scanMeasurement)
}

func (r *pgMeasurementRepository) Create(ctx context.Context, in model.NewMeasurement) (*model.Measurement, error) {
	query := `INSERT INTO measurements (user_id, contest_id, measurement)
	          VALUES ($1, $2, $3::text::numeric)
	          RETURNING ` + measurementColumns
	m, err := scanMeasurement(r.db.QueryRowContext(ctx, query, *in.UserID, *in.ContestID, in.Measurement.String()))
	if err != nil {
		return nil, common.ClassifyDBError("pgMeasurementRepository.Create", err)
	}
	return &m, nil
}

func (r *pgMeasurementRepository) FindByID(ctx context.Context, id int64) (*model.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE id = $1`
	m, err := scanMeasurement(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgMeasurementRepository.FindByID: %w", err)
	}
	return &m, nil
}

func (r *pgMeasurementRepository) FindByUser(ctx context.Context, userID int64) ([]model.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE user_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgMeasurementRepository.FindByUser", query, scanMeasurement, userID)
}

func (r *pgMeasurementRepository) FindByContest(ctx context.Context, contestID int64) ([]model.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE contest_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgMeasurementRepository.FindByContest", query, scanMeasurement, contestID)
}

func (r *pgMeasurementRepository) Info(ctx context.Context, userID, contestID int64) ([]model.MeasurementInfo, error) {
	query := `SELECT id, user_id, contest_id, measurement::double precision, date_created
	          FROM measurements WHERE user_id = $1 AND contest_id = $2
	          ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgMeasurementRepository.Info", query, func(s rowScanner) (model.MeasurementInfo, error) {
		var m model.MeasurementInfo
		err := s.Scan(&m.ID, &m.UserID, &m.ContestID, &m.Measurement, &m.DateCreated)
		return m, err
	}, userID, contestID)
}

func (r *pgMeasurementRepository) Progress(ctx context.Context, userID int64) ([]model.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements WHERE user_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgMeasurementRepository.Progress", query, scanMeasurement, userID)
}

func (r *pgMeasurementRepository) Latest(ctx context.Context, userID, contestID int64, limit int) ([]model.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements
	          WHERE user_id = $1 AND contest_id = $2
	          ORDER BY date_created DESC, id DESC
	          LIMIT $3`
	return queryList(ctx, r.db, "pgMeasurementRepository.Latest", query, scanMeasurement, userID, contestID, limit)
}

func (r *pgMeasurementRepository) Update(ctx context.Context, id int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgMeasurementRepository.Update", "measurements", set, []string{"id"}, id)
}

func (r *pgMeasurementRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgMeasurementRepository.Delete", "measurements", []string{"id"}, id)
}
