package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type ContestRepository interface {
	List(ctx context.Context) ([]model.Contest, error)
	Create(ctx context.Context, in model.NewContest) (*model.Contest, error)
	FindByID(ctx context.Context, id int64) (*model.Contest, error)
	FindByName(ctx context.Context, name string) ([]model.Contest, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

const contestColumns = `contest_id, contest_name, date_start, date_end, weighin_day, date_created`

func scanContest(s rowScanner) (model.Contest, error) {
	var c model.Contest
	err := s.Scan(&c.ContestID, &c.ContestName, &c.DateStart, &c.DateEnd, &c.WeighinDay, &c.DateCreated)
	return c, err
}

func (r *pgContestRepository) List(ctx context.Context) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests ORDER BY contest_id`
	return queryList(ctx, r.db, "pgContestRepository.List", query, scanContest)
}

func (r *pgContestRepository) Create(ctx context.Context, in model.NewContest) (*model.Contest, error) {
	query := `INSERT INTO contests (date_start, date_end, contest_name, weighin_day)
	          VALUES ($1::text::timestamptz, $2::text::timestamptz, $3, $4)
	          RETURNING ` + contestColumns
	c, err := scanContest(r.db.QueryRowContext(ctx, query, *in.DateStart, *in.DateEnd, *in.ContestName, *in.WeighinDay))
	if err != nil {
		return nil, common.ClassifyDBError("pgContestRepository.Create", err)
	}
	return &c, nil
}

func (r *pgContestRepository) FindByID(ctx context.Context, id int64) (*model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests WHERE contest_id = $1`
	c, err := scanContest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindByID: %w", err)
	}
	return &c, nil
}

func (r *pgContestRepository) FindByName(ctx context.Context, name string) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests WHERE contest_name = $1 ORDER BY contest_id`
	return queryList(ctx, r.db, "pgContestRepository.FindByName", query, scanContest, name)
}

func (r *pgContestRepository) Update(ctx context.Context, id int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgContestRepository.Update", "contests", set, []string{"contest_id"}, id)
}

func (r *pgContestRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgContestRepository.Delete", "contests", []string{"contest_id"}, id)
}
