package model

import "github.com/shopspring/decimal"

// CurrentStats is the live per-(user, contest) snapshot.
type CurrentStats struct {
	UserID        int64           `json:"user_id"`
	ContestID     int64           `json:"contest_id"`
	CurrentWeight decimal.Decimal `json:"current_weight"`
	GoalWeight    decimal.Decimal `json:"goal_weight"`
	DisplayName   string          `json:"display_name"`
}

// WeightPageStats is the double precision projection used by the progress page.
type WeightPageStats struct {
	UserID        int64   `json:"user_id"`
	ContestID     int64   `json:"contest_id"`
	CurrentWeight float64 `json:"current_weight"`
	GoalWeight    float64 `json:"goal_weight"`
	DisplayName   string  `json:"display_name"`
}

type NewCurrentStats struct {
	UserID        *int64           `json:"user_id" validate:"required"`
	CurrentWeight *decimal.Decimal `json:"current_weight" validate:"required"`
	GoalWeight    *decimal.Decimal `json:"goal_weight" validate:"required"`
	DisplayName   *string          `json:"display_name" validate:"required"`
	ContestID     *int64           `json:"contest_id" validate:"required"`
}

type CurrentStatsPatch struct {
	UserID        *int64           `json:"user_id"`
	CurrentWeight *decimal.Decimal `json:"current_weight"`
	GoalWeight    *decimal.Decimal `json:"goal_weight"`
	DisplayName   *string          `json:"display_name"`
	ContestID     *int64           `json:"contest_id"`
}

func (p CurrentStatsPatch) Assignments() Assignments {
	var a Assignments
	a = a.Int("user_id", p.UserID)
	a = a.Decimal("current_weight", p.CurrentWeight)
	a = a.Decimal("goal_weight", p.GoalWeight)
	a = a.String("display_name", p.DisplayName)
	a = a.Int("contest_id", p.ContestID)
	return a
}

// CurrentStatsContestPatch moves every stats row of a user to another contest.
type CurrentStatsContestPatch struct {
	ContestID *int64 `json:"contest_id"`
}

func (p CurrentStatsContestPatch) Assignments() Assignments {
	var a Assignments
	return a.Int("contest_id", p.ContestID)
}
