package model

import "time"

const (
	CategoryWeight  = "weight"
	CategoryWorkout = "workout"
	CategoryStomach = "stomach"
)

type Points struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ContestID   int64     `json:"contest_id"`
	Points      int64     `json:"points"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	WinID       *int64    `json:"win_id"`
	DateCreated time.Time `json:"date_created"`
}

// PointsSum keeps the string-typed sum clients already parse; Sum is nil when no rows match.
type PointsSum struct {
	Sum *string `json:"sum"`
}

// Standing is one leaderboard line for a contest.
type Standing struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Total       int64  `json:"total"`
}

type NewPoints struct {
	UserID      *int64  `json:"user_id" validate:"required"`
	ContestID   *int64  `json:"contest_id" validate:"required"`
	Points      *int64  `json:"points" validate:"required"`
	Category    *string `json:"category" validate:"required"`
	Description *string `json:"description"`
	WinID       *int64  `json:"win_id"`
}

type PointsPatch struct {
	UserID      *int64  `json:"user_id"`
	ContestID   *int64  `json:"contest_id"`
	Points      *int64  `json:"points"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	WinID       *int64  `json:"win_id"`
}

func (p PointsPatch) Assignments() Assignments {
	var a Assignments
	a = a.Int("user_id", p.UserID)
	a = a.Int("contest_id", p.ContestID)
	a = a.Int("points", p.Points)
	a = a.String("category", p.Category)
	a = a.String("description", p.Description)
	a = a.Int("win_id", p.WinID)
	return a
}

type Win struct {
	WinID     int64  `json:"win_id"`
	Win       string `json:"win"`
	ContestID int64  `json:"contest_id"`
}

type NewWin struct {
	Win       *string `json:"win" validate:"required"`
	ContestID *int64  `json:"contest_id" validate:"required"`
}

type WinPatch struct {
	Win       *string `json:"win"`
	ContestID *int64  `json:"contest_id"`
}

func (p WinPatch) Assignments() Assignments {
	var a Assignments
	a = a.String("win", p.Win)
	a = a.Int("contest_id", p.ContestID)
	return a
}
