package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type ContestUserRepository interface {
	List(ctx context.Context) ([]model.ContestUser, error)
	Create(ctx context.Context, in model.NewContestUser) (*model.ContestUser, error)
	FindByID(ctx context.Context, id int64) (*model.ContestUser, error)
	FindByUser(ctx context.Context, userID int64) ([]model.ContestUser, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.ContestUser, error)
	UserIDsByContest(ctx context.Context, contestID int64) ([]model.UserID, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	UpdateByUser(ctx context.Context, userID int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

type pgContestUserRepository struct {
	db *sql.DB
}

func NewPgContestUserRepository(db *sql.DB) ContestUserRepository {
	return &pgContestUserRepository{db: db}
}

const contestUserColumns = `id, user_id, contest_id, date_created`

func scanContestUser(s rowScanner) (model.ContestUser, error) {
	var cu model.ContestUser
	err := s.Scan(&cu.ID, &cu.UserID, &cu.ContestID, &cu.DateCreated)
	return cu, err
}

func (r *pgContestUserRepository) List(ctx context.Context) ([]model.ContestUser, error) {
	query := `SELECT ` + contestUserColumns + ` FROM contest_to_user ORDER BY user_id, id`
	return queryList(ctx, r.db, "pgContestUserRepository.List", query, scanContestUser)
}

func (r *pgContestUserRepository) Create(ctx context.Context, in model.NewContestUser) (*model.ContestUser, error) {
	query := `INSERT INTO contest_to_user (user_id, contest_id)
	          VALUES ($1, $2)
	          RETURNING ` + contestUserColumns
	cu, err := scanContestUser(r.db.QueryRowContext(ctx, query, *in.UserID, *in.ContestID))
	if err != nil {
		return nil, common.ClassifyDBError("pgContestUserRepository.Create", err)
	}
	return &cu, nil
}

func (r *pgContestUserRepository) FindByID(ctx context.Context, id int64) (*model.ContestUser, error) {
	query := `SELECT ` + contestUserColumns + ` FROM contest_to_user WHERE id = $1`
	cu, err := scanContestUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestUserRepository.FindByID: %w", err)
	}
	return &cu, nil
}

func (r *pgContestUserRepository) FindByUser(ctx context.Context, userID int64) ([]model.ContestUser, error) {
	query := `SELECT ` + contestUserColumns + ` FROM contest_to_user WHERE user_id = $1 ORDER BY contest_id`
	return queryList(ctx, r.db, "pgContestUserRepository.FindByUser", query, scanContestUser, userID)
}

func (r *pgContestUserRepository) FindByContest(ctx context.Context, contestID int64) ([]model.ContestUser, error) {
	query := `SELECT ` + contestUserColumns + ` FROM contest_to_user WHERE contest_id = $1 ORDER BY user_id`
	return queryList(ctx, r.db, "pgContestUserRepository.FindByContest", query, scanContestUser, contestID)
}

func (r *pgContestUserRepository) UserIDsByContest(ctx context.Context, contestID int64) ([]model.UserID, error) {
	query := `SELECT user_id FROM contest_to_user WHERE contest_id = $1 ORDER BY user_id`
	return queryList(ctx, r.db, "pgContestUserRepository.UserIDsByContest", query, func(s rowScanner) (model.UserID, error) {
		var u model.UserID
		err := s.Scan(&u.UserID)
		return u, err
	}, contestID)
}

func (r *pgContestUserRepository) Update(ctx context.Context, id int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgContestUserRepository.Update", "contest_to_user", set, []string{"id"}, id)
}

func (r *pgContestUserRepository) UpdateByUser(ctx context.Context, userID int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgContestUserRepository.UpdateByUser", "contest_to_user", set, []string{"user_id"}, userID)
}

func (r *pgContestUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgContestUserRepository.Delete", "contest_to_user", []string{"id"}, id)
}

func (r *pgContestUserRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgContestUserRepository.DeleteByUser", "contest_to_user", []string{"user_id"}, userID)
}
