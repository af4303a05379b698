package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	ListSummaries(ctx context.Context) ([]model.UserSummary, error)
	// Create expects in.Password to be hashed already.
	Create(ctx context.Context, in model.NewUser) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `user_id, username, password, display_name, date_created`

func scanUser(s rowScanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.UserID, &u.Username, &u.Password, &u.DisplayName, &u.DateCreated)
	return u, err
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id`
	return queryList(ctx, r.db, "pgUserRepository.List", query, scanUser)
}

func (r *pgUserRepository) ListSummaries(ctx context.Context) ([]model.UserSummary, error) {
	query := `SELECT user_id, username, display_name FROM users ORDER BY user_id`
	return queryList(ctx, r.db, "pgUserRepository.ListSummaries", query, func(s rowScanner) (model.UserSummary, error) {
		var u model.UserSummary
		err := s.Scan(&u.UserID, &u.Username, &u.DisplayName)
		return u, err
	})
}

func (r *pgUserRepository) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	query := `INSERT INTO users (password, display_name, username)
	          VALUES ($1, $2, $3)
	          RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, *in.Password, *in.DisplayName, *in.Username))
	if err != nil {
		return nil, common.ClassifyDBError("pgUserRepository.Create", err)
	}
	return &u, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return &u, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return &u, nil
}

func (r *pgUserRepository) Update(ctx context.Context, id int64, set model.Assignments) (int64, error) {
	return updateWhere(ctx, r.db, "pgUserRepository.Update", "users", set, []string{"user_id"}, id)
}

func (r *pgUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return deleteWhere(ctx, r.db, "pgUserRepository.Delete", "users", []string{"user_id"}, id)
}
