package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type CurrentStatsRepository interface {
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

type pgCurrentStatsRepository struct {
	db *sql.DB
}

func NewPgCurrentStatsRepository(db *sql.DB) CurrentStatsRepository {
	return &pgCurrentStatsRepository{db: db}
}

const currentStatsColumns = `user_id, contest_id, current_weight, goal_weight, display_name`

func scanCurrentStats(s rowScanner) (model.CurrentStats, error) {
	var cs model.CurrentStats
	err := s.Scan(&cs.UserID, &cs.ContestID, &cs.CurrentWeight, &cs.GoalWeight, &cs.DisplayName)
	return cs, err
}

func (r *pgCurrentStatsRepository) List(ctx context.Context) ([]model.CurrentStats, error) {
	query := `SELECT ` + currentStatsColumns + ` FROM current_stats ORDER BY user_id, contest_id`
	return queryList(ctx, r.db, "pgCurrentStatsRepository.List", query, scanCurrentStats)
}

func (r *pgCurrentStatsRepository) ListByContest(ctx context.Context) ([]model.CurrentStats, error) {
	query := `SELECT ` + currentStatsColumns + ` FROM current_stats ORDER BY contest_id, user_id`
	return queryList(ctx, r.db, "pgCurrentStatsRepository.ListByContest", query, scanCurrentStats)
}

func (r *pgCurrentStatsRepository) Create(ctx context.Context, in model.NewCurrentStats) (*model.CurrentStats, error) {
	query := `INSERT INTO current_stats (user_id, current_weight, goal_weight, display_name, contest_id)
	          VALUES ($1, $2::text::numeric, $3::text::numeric, $4, $5)
	          RETURNING ` + currentStatsColumns
	cs, err := scanCurrentStats(r.db.QueryRowContext(ctx, query,
		*in.UserID, in.CurrentWeight.String(), in.GoalWeight.String(), *in.DisplayName, *in.ContestID))
	if err != nil {
		return nil, common.ClassifyDBError("pgCurrentStatsRepository.Create", err)
	}
	return &cs, nil
}

func (r *pgCurrentStatsRepository) FindByUser(ctx context.Context, userID int64) ([]model.CurrentStats, error) {
	query := `SELECT ` + currentStatsColumns + ` FROM current_stats WHERE user_id = $1 ORDER BY contest_id`
	return queryList(ctx, r.db, "pgCurrentStatsRepository.FindByUser", query, scanCurrentStats, userID)
}

func (r *pgCurrentStatsRepository) FindByContest(ctx context.Context, contestID int64) ([]model.CurrentStats, error) {
	query := `SELECT ` + currentStatsColumns + ` FROM current_stats WHERE contest_id = $1 ORDER BY user_id`
	return queryList(ctx, r.db, "pgCurrentStatsRepository.FindByContest", query, scanCurrentStats, contestID)
}

func (r *pgCurrentStatsRepository) FindByContestUser(ctx context.Context, userID, contestID int64) ([]model.CurrentStats, error) {
	query := `SELECT ` + currentStatsColumns + ` FROM current_stats WHERE user_id = $1 AND contest_id = $2`
	return queryList(ctx, r.db, "pgCurrentStatsRepository.FindByContestUser", query, scanCurrentStats, userID, contestID)
}

// DisplayName returns common.ErrNotFound when the user is not in the contest.
func (r *pgCurrentStatsRepository) DisplayName(ctx context.Context, userID, contestID int64) (string, error) {
	query := `SELECT display_name FROM current_stats WHERE user_id = $1 AND contest_id = $2`
	var name string
	if err := r.db.QueryRowContext(ctx, query, userID, contestID).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("pgCurrentStatsRepository.DisplayName: %w", err)
	}
	return name, nil
}

func (r *pgCurrentStatsRepository) WeightPageStats(ctx context.Context, userID, contestID int64) ([]model.WeightPageStats, error) {
	query := `SELECT user_id, contest_id, current_weight::double precision, goal_weight::double precision, display_name
	          FROM current_stats WHERE user_id = $1 AND contest_id = $2`
	return queryList(ctx, r.db, "pgCurrentStatsRepository.WeightPageStats", query, func(s rowScanner) (model.WeightPageStats, error) {
		var w model.WeightPageStats
		err := s.Scan(&w.UserID, &w.ContestID, &w.CurrentWeight, &w.GoalWeight, &w.DisplayName)
		return w, err
	}, userID, contestID)
}

func (r *pgCurrentStatsRepository) UpdateByUser(ctx context.Context, userID int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgCurrentStatsRepository.UpdateByUser", "current_stats", set,
		[]string{"user_id"}, userID)
}

func (r *pgCurrentStatsRepository) UpdateByContestUser(ctx context.Context, userID, contestID int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgCurrentStatsRepository.UpdateByContestUser", "current_stats", set,
		[]string{"user_id", "contest_id"}, userID, contestID)
}

func (r *pgCurrentStatsRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgCurrentStatsRepository.DeleteByUser", "current_stats",
		[]string{"user_id"}, userID)
}

func (r *pgCurrentStatsRepository) DeleteByContestUser(ctx context.Context, userID, contestID int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgCurrentStatsRepository.DeleteByContestUser", "current_stats",
		[]string{"user_id", "contest_id"}, userID, contestID)
}
