package model

import "time"

type Contest struct {
	ContestID   int64     `json:"contest_id"`
	ContestName string    `json:"contest_name"`
	DateStart   time.Time `json:"date_start"`
	DateEnd     time.Time `json:"date_end"`
	WeighinDay  string    `json:"weighin_day"`
	DateCreated time.Time `json:"date_created"`
}

type ContestID struct {
	ContestID int64 `json:"contest_id"`
}

// NewContest keeps dates as strings; PostgreSQL parses any timestamptz literal.
type NewContest struct {
	DateStart   *string `json:"date_start" validate:"required"`
	DateEnd     *string `json:"date_end" validate:"required"`
	ContestName *string `json:"contest_name" validate:"required"`
	WeighinDay  *string `json:"weighin_day" validate:"required"`
}

type ContestPatch struct {
	DateStart   *string `json:"date_start"`
	DateEnd     *string `json:"date_end"`
	ContestName *string `json:"contest_name"`
	WeighinDay  *string `json:"weighin_day"`
}

func (p ContestPatch) Assignments() Assignments {
	var a Assignments
	a = a.Timestamp("date_start", p.DateStart)
	a = a.Timestamp("date_end", p.DateEnd)
	a = a.String("contest_name", p.ContestName)
	a = a.String("weighin_day", p.WeighinDay)
	return a
}
