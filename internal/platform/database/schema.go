package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists every table in dependency order, parents first.
var Tables = []string{
	"users",
	"contests",
	"contest_to_user",
	"current_stats",
	"measurements",
	"weighin",
	"workout_tracking",
	"win",
	"points",
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    display_name TEXT NOT NULL,
    date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS contests (
    contest_id SERIAL PRIMARY KEY,
    contest_name TEXT NOT NULL,
    date_start TIMESTAMPTZ NOT NULL,
    date_end TIMESTAMPTZ NOT NULL,
    weighin_day TEXT NOT NULL,
    date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_contests_name ON contests(contest_name);

CREATE TABLE IF NOT EXISTS contest_to_user (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    contest_id INTEGER NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE,
    date_created TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, contest_id)
);

CREATE INDEX IF NOT EXISTS idx_contest_to_user_contest ON contest_to_user(contest_id);

CREATE TABLE IF NOT EXISTS current_stats (
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    contest_id INTEGER NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE,
    current_weight NUMERIC NOT NULL,
    goal_weight NUMERIC NOT NULL,
    display_name TEXT NOT NULL,
    PRIMARY KEY (user_id, contest_id)
);

CREATE INDEX IF NOT EXISTS idx_current_stats_contest ON current_stats(contest_id);

CREATE TABLE IF NOT EXISTS measurements (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    contest_id INTEGER NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE,
    measurement NUMERIC NOT NULL,
    date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_measurements_user_contest ON measurements(user_id, contest_id);

CREATE TABLE IF NOT EXISTS weighin (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    contest_id INTEGER NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE,
    weight NUMERIC NOT NULL,
    date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_weighin_user_contest ON weighin(user_id, contest_id);

CREATE TABLE IF NOT EXISTS workout_tracking (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    contest_id INTEGER NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE,
    category TEXT NOT NULL,
    date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_workout_tracking_user_contest ON workout_tracking(user_id, contest_id);

CREATE TABLE IF NOT EXISTS win (
    win_id SERIAL PRIMARY KEY,
    win TEXT NOT NULL,
    contest_id INTEGER NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS points (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    contest_id INTEGER NOT NULL REFERENCES contests(contest_id) ON DELETE CASCADE,
    points INTEGER NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    win_id INTEGER REFERENCES win(win_id) ON DELETE SET NULL,
    date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_points_user_contest ON points(user_id, contest_id);
`
