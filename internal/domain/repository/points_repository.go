package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type PointsRepository interface {
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

type pgPointsRepository struct {
	db *sql.DB
}

func NewPgPointsRepository(db *sql.DB) PointsRepository {
	return &pgPointsRepository{db: db}
}

const pointsColumns = `id, user_id, contest_id, points, category, description, win_id, date_created`

func scanPoints(s rowScanner) (model.Points, error) {
	var p model.Points
	var winID sql.NullInt64
	if err := s.Scan(&p.ID, &p.UserID, &p.ContestID, &p.Points, &p.Category, &p.Description, &winID, &p.DateCreated); err != nil {
		return p, err
	}
	if winID.Valid {
		p.WinID = &winID.Int64
	}
	return p, nil
}

func scanSum(s rowScanner) (model.PointsSum, error) {
	var sum sql.NullString
	if err := s.Scan(&sum); err != nil {
		return model.PointsSum{}, err
	}
	if !sum.Valid {
		return model.PointsSum{}, nil
	}
	return model.PointsSum{Sum: &sum.String}, nil
}

func (r *pgPointsRepository) List(ctx context.Context) ([]model.Points, error) {
	query := `SELECT ` + pointsColumns + ` FROM points ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgPointsRepository.List", query, scanPoints)
}

func (r *pgPointsRepository) Create(ctx context.Context, in model.NewPoints) (*model.Points, error) {
	query := `INSERT INTO points (user_id, contest_id, points, category, description, win_id)
	          VALUES ($1, $2, $3, $4, COALESCE($5, ''), $6)
	          RETURNING ` + pointsColumns
	p, err := scanPoints(r.db.QueryRowContext(ctx, query,
		*in.UserID, *in.ContestID, *in.Points, *in.Category, optionalString(in.Description), optionalInt(in.WinID)))
	if err != nil {
		return nil, common.ClassifyDBError("pgPointsRepository.Create", err)
	}
	return &p, nil
}

func (r *pgPointsRepository) FindByID(ctx context.Context, id int64) (*model.Points, error) {
	query := `SELECT ` + pointsColumns + ` FROM points WHERE id = $1`
	p, err := scanPoints(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPointsRepository.FindByID: %w", err)
	}
	return &p, nil
}

func (r *pgPointsRepository) FindByUser(ctx context.Context, userID int64) ([]model.Points, error) {
	query := `SELECT ` + pointsColumns + ` FROM points WHERE user_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgPointsRepository.FindByUser", query, scanPoints, userID)
}

func (r *pgPointsRepository) FindByContest(ctx context.Context, contestID int64) ([]model.Points, error) {
	query := `SELECT ` + pointsColumns + ` FROM points WHERE contest_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgPointsRepository.FindByContest", query, scanPoints, contestID)
}

// TotalForUser always yields exactly one row; Sum is nil when the user has no points.
func (r *pgPointsRepository) TotalForUser(ctx context.Context, userID, contestID int64) ([]model.PointsSum, error) {
	query := `SELECT SUM(points)::text FROM points WHERE user_id = $1 AND contest_id = $2`
	return queryList(ctx, r.db, "pgPointsRepository.TotalForUser", query, scanSum, userID, contestID)
}

func (r *pgPointsRepository) TotalForCategory(ctx context.Context, userID, contestID int64, category string) ([]model.PointsSum, error) {
	query := `SELECT SUM(points)::text FROM points WHERE user_id = $1 AND contest_id = $2 AND category = $3`
	return queryList(ctx, r.db, "pgPointsRepository.TotalForCategory", query, scanSum, userID, contestID, category)
}

// Standings ranks every contest member, including those without points.
func (r *pgPointsRepository) Standings(ctx context.Context, contestID int64) ([]model.Standing, error) {
	query := `SELECT cs.user_id, cs.display_name, COALESCE(SUM(p.points), 0)
	          FROM current_stats cs
	          LEFT JOIN points p ON p.user_id = cs.user_id AND p.contest_id = cs.contest_id
	          WHERE cs.contest_id = $1
	          GROUP BY cs.user_id, cs.display_name
	          ORDER BY 3 DESC, cs.user_id`
	return queryList(ctx, r.db, "pgPointsRepository.Standings", query, func(s rowScanner) (model.Standing, error) {
		var st model.Standing
		err := s.Scan(&st.UserID, &st.DisplayName, &st.Total)
		return st, err
	}, contestID)
}

func (r *pgPointsRepository) Update(ctx context.Context, id int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgPointsRepository.Update", "points", set, []string{"id"}, id)
}

func (r *pgPointsRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgPointsRepository.Delete", "points", []string{"id"}, id)
}
