package repository

import (
	"context"
	"database/sql"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type WinRepository interface {
	List(ctx context.Context) ([]model.Win, error)
	Create(ctx context.Context, in model.NewWin) (*model.Win, error)
	FindByID(ctx context.Context, winID int64) ([]model.Win, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Win, error)
	Update(ctx context.Context, winID int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, winID int64) (int64, error)
}

type pgWinRepository struct {
	db *sql.DB
}

func NewPgWinRepository(db *sql.DB) WinRepository {
	return &pgWinRepository{db: db}
}

const winColumns = `win_id, win, contest_id`

func scanWin(s rowScanner) (model.Win, error) {
	var w model.Win
	err := s.Scan(&w.WinID, &w.Win, &w.ContestID)
	return w, err
}

func (r *pgWinRepository) List(ctx context.Context) ([]model.Win, error) {
	query := `SELECT ` + winColumns + ` FROM win ORDER BY win_id`
	return queryList(ctx, r.db, "pgWinRepository.List", query, scanWin)
}

func (r *pgWinRepository) Create(ctx context.Context, in model.NewWin) (*model.Win, error) {
	query := `INSERT INTO win (win, contest_id) VALUES ($1, $2) RETURNING ` + winColumns
	w, err := scanWin(r.db.QueryRowContext(ctx, query, *in.Win, *in.ContestID))
	if err != nil {
		return nil, common.ClassifyDBError("pgWinRepository.Create", err)
	}
	return &w, nil
}

// FindByID returns a sequence so the route keeps its array shape.
func (r *pgWinRepository) FindByID(ctx context.Context, winID int64) ([]model.Win, error) {
	query := `SELECT ` + winColumns + ` FROM win WHERE win_id = $1`
	return queryList(ctx, r.db, "pgWinRepository.FindByID", query, scanWin, winID)
}

func (r *pgWinRepository) FindByContest(ctx context.Context, contestID int64) ([]model.Win, error) {
	query := `SELECT ` + winColumns + ` FROM win WHERE contest_id = $1 ORDER BY win_id`
	return queryList(ctx, r.db, "pgWinRepository.FindByContest", query, scanWin, contestID)
}

func (r *pgWinRepository) Update(ctx context.Context, winID int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgWinRepository.Update", "win", set, []string{"win_id"}, winID)
}

func (r *pgWinRepository) Delete(ctx context.Context, winID int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgWinRepository.Delete", "win", []string{"win_id"}, winID)
}
