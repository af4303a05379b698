package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

type WeighinRepository interface {
	List(ctx context.Context) ([]model.Weighin, error)
	// Create records the weigh-in and moves current_stats.current_weight for the same
	// (user, contest) in one statement.
	Create(ctx context.Context, in model.NewWeighin) (*model.Weighin, error)
	FindByID(ctx context.Context, id int64) (*model.Weighin, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Weighin, error)
	FindByContest(ctx context.Context, contestID int64) ([]model.Weighin, error)
	Latest(ctx context.Context, userID, contestID int64, limit int) ([]model.Weighin, error)
	// Update and Delete keep current_weight in step with the newest remaining weigh-in.
	Update(ctx context.Context, id int64, set model.Assignments) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type pgWeighinRepository struct {
	db *sql.DB
}

func NewPgWeighinRepository(db *sql.DB) WeighinRepository {
	return &pgWeighinRepository{db: db}
}

const weighinColumns = `id, user_id, contest_id, weight, date_created`

func scanWeighin(s rowScanner) (model.Weighin, error) {
	var w model.Weighin
	err := s.Scan(&w.ID, &w.UserID, &w.ContestID, &w.Weight, &w.DateCreated)
	return w, err
}

func (r *pgWeighinRepository) List(ctx context.Context) ([]model.Weighin, error) {
	query := `SELECT ` + weighinColumns + ` FROM weighin ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgWeighinRepository.List", query, scanWeighin)
}

func (r *pgWeighinRepository) Create(ctx context.Context, in model.NewWeighin) (*model.Weighin, error) {
	query := `WITH w AS (
	              INSERT INTO weighin (user_id, contest_id, weight)
	              VALUES ($1, $2, $3::text::numeric)
	              RETURNING ` + weighinColumns + `
	          ), s AS (
	              UPDATE current_stats cs SET current_weight = w.weight
	              FROM w WHERE cs.user_id = w.user_id AND cs.contest_id = w.contest_id
	          )
	          SELECT ` + weighinColumns + ` FROM w`
	w, err := scanWeighin(r.db.QueryRowContext(ctx, query, *in.UserID, *in.ContestID, in.Weight.String()))
	if err != nil {
		return nil, common.ClassifyDBError("pgWeighinRepository.Create", err)
	}
	return &w, nil
}

func (r *pgWeighinRepository) FindByID(ctx context.Context, id int64) (*model.Weighin, error) {
	query := `SELECT ` + weighinColumns + ` FROM weighin WHERE id = $1`
	w, err := scanWeighin(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgWeighinRepository.FindByID: %w", err)
	}
	return &w, nil
}

func (r *pgWeighinRepository) FindByUser(ctx context.Context, userID int64) ([]model.Weighin, error) {
	query := `SELECT ` + weighinColumns + ` FROM weighin WHERE user_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgWeighinRepository.FindByUser", query, scanWeighin, userID)
}

func (r *pgWeighinRepository) FindByContest(ctx context.Context, contestID int64) ([]model.Weighin, error) {
	query := `SELECT ` + weighinColumns + ` FROM weighin WHERE contest_id = $1 ORDER BY date_created, id`
	return queryList(ctx, r.db, "pgWeighinRepository.FindByContest", query, scanWeighin, contestID)
}

func (r *pgWeighinRepository) Latest(ctx context.Context, userID, contestID int64, limit int) ([]model.Weighin, error) {
	query := `SELECT ` + weighinColumns + ` FROM weighin
	          WHERE user_id = $1 AND contest_id = $2
	          ORDER BY date_created DESC, id DESC
	          LIMIT $3`
	return queryList(ctx, r.db, "pgWeighinRepository.Latest", query, scanWeighin, userID, contestID, limit)
}

// Update rewrites the weigh-in and, in the same statement, resets current_weight of every
// (user, contest) pair the row belonged to before or after to that pair's newest weigh-in.
// Data-modifying CTEs share one snapshot, so the newest row is chosen from the untouched
// rows plus the RETURNING output of u.
func (r *pgWeighinRepository) Update(ctx context.Context, id int64, set model.Assignments) (int64, error) {
	if len(set) == 0 {
		return 0, nil
	}
	clause, args := buildSet(set, nil)
	args = append(args, id)
	query := fmt.Sprintf(`WITH old AS (
	              SELECT user_id, contest_id FROM weighin WHERE id = $%[2]d
	          ), u AS (
	              UPDATE weighin SET %[1]s WHERE id = $%[2]d
	              RETURNING `+weighinColumns+`
	          ), pairs AS (
	              SELECT user_id, contest_id FROM old
	              UNION
	              SELECT user_id, contest_id FROM u
	          ), remaining AS (
	              SELECT `+weighinColumns+` FROM weighin WHERE id <> $%[2]d
	              UNION ALL
	              SELECT `+weighinColumns+` FROM u
	          ), newest AS (
	              SELECT DISTINCT ON (rw.user_id, rw.contest_id) rw.user_id, rw.contest_id, rw.weight
	              FROM remaining rw
	              JOIN pairs p ON p.user_id = rw.user_id AND p.contest_id = rw.contest_id
	              ORDER BY rw.user_id, rw.contest_id, rw.date_created DESC, rw.id DESC
	          ), s AS (
	              UPDATE current_stats cs SET current_weight = n.weight
	              FROM newest n WHERE cs.user_id = n.user_id AND cs.contest_id = n.contest_id
	          )
	          SELECT count(*) FROM u`, clause, len(args))

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, common.ClassifyDBError("pgWeighinRepository.Update", err)
	}
	return n, nil
}

// Delete removes the weigh-in and falls current_weight back to the newest weigh-in left
// for the same (user, contest). With none left current_weight is kept as is.
func (r *pgWeighinRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `WITH d AS (
	              DELETE FROM weighin WHERE id = $1
	              RETURNING id, user_id, contest_id
	          ), newest AS (
	              SELECT DISTINCT ON (w.user_id, w.contest_id) w.user_id, w.contest_id, w.weight
	              FROM weighin w
	              JOIN d ON d.user_id = w.user_id AND d.contest_id = w.contest_id
	              WHERE w.id <> d.id
	              ORDER BY w.user_id, w.contest_id, w.date_created DESC, w.id DESC
	          ), s AS (
	              UPDATE current_stats cs SET current_weight = n.weight
	              FROM newest n WHERE cs.user_id = n.user_id AND cs.contest_id = n.contest_id
	          )
	          SELECT count(*) FROM d`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return 0, common.ClassifyDBError("pgWeighinRepository.Delete", err)
	}
	return n, nil
}
