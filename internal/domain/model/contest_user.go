package model

import "time"

// ContestUser is a membership row of contest_to_user.
type ContestUser struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ContestID   int64     `json:"contest_id"`
	DateCreated time.Time `json:"date_created"`
}

type NewContestUser struct {
	UserID    *int64 `json:"user_id" validate:"required"`
	ContestID *int64 `json:"contest_id" validate:"required"`
}

type ContestUserPatch struct {
	UserID    *int64 `json:"user_id"`
	ContestID *int64 `json:"contest_id"`
}

func (p ContestUserPatch) Assignments() Assignments {
	var a Assignments
	a = a.Int("user_id", p.UserID)
	a = a.Int("contest_id", p.ContestID)
	return a
}
