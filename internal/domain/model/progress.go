package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Measurement struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	ContestID   int64           `json:"contest_id"`
	Measurement decimal.Decimal `json:"measurement"`
	DateCreated time.Time       `json:"date_created"`
}

// MeasurementInfo is a measurement cast to double precision for charting.
type MeasurementInfo struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ContestID   int64     `json:"contest_id"`
	Measurement float64   `json:"measurement"`
	DateCreated time.Time `json:"date_created"`
}

type NewMeasurement struct {
	UserID      *int64           `json:"user_id" validate:"required"`
	ContestID   *int64           `json:"contest_id" validate:"required"`
	Measurement *decimal.Decimal `json:"measurement" validate:"required"`
}

type MeasurementPatch struct {
	UserID      *int64           `json:"user_id"`
	ContestID   *int64           `json:"contest_id"`
	Measurement *decimal.Decimal `json:"measurement"`
}

func (p MeasurementPatch) Assignments() Assignments {
	var a Assignments
	a = a.Int("user_id", p.UserID)
	a = a.Int("contest_id", p.ContestID)
	a = a.Decimal("measurement", p.Measurement)
	return a
}

type Weighin struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	ContestID   int64           `json:"contest_id"`
	Weight      decimal.Decimal `json:"weight"`
	DateCreated time.Time       `json:"date_created"`
}

type NewWeighin struct {
	UserID    *int64           `json:"user_id" validate:"required"`
	ContestID *int64           `json:"contest_id" validate:"required"`
	Weight    *decimal.Decimal `json:"weight" validate:"required"`
}

type WeighinPatch struct {
	UserID    *int64           `json:"user_id"`
	ContestID *int64           `json:"contest_id"`
	Weight    *decimal.Decimal `json:"weight"`
}

func (p WeighinPatch) Assignments() Assignments {
	var a Assignments
	a = a.Int("user_id", p.UserID)
	a = a.Int("contest_id", p.ContestID)
	a = a.Decimal("weight", p.Weight)
	return a
}

type Workout struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ContestID   int64     `json:"contest_id"`
	Category    string    `json:"category"`
	DateCreated time.Time `json:"date_created"`
}

// WorkoutDate is the date-only projection used by the workout calendar.
type WorkoutDate struct {
	DateCreated time.Time `json:"date_created"`
}

type NewWorkout struct {
	UserID    *int64  `json:"user_id" validate:"required"`
	ContestID *int64  `json:"contest_id" validate:"required"`
	Category  *string `json:"category" validate:"required"`
}

type WorkoutPatch struct {
	UserID    *int64  `json:"user_id"`
	ContestID *int64  `json:"contest_id"`
	Category  *string `json:"category"`
}

func (p WorkoutPatch) Assignments() Assignments {
	var a Assignments
	a = a.Int("user_id", p.UserID)
	a = a.Int("contest_id", p.ContestID)
	a = a.String("category", p.Category)
	return a
}
