package model

import "time"

// User.Password always holds the bcrypt hash, never the plaintext.
type User struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Password    string    `json:"password"`
	DisplayName string    `json:"display_name"`
	DateCreated time.Time `json:"date_created"`
}

// UserSummary is the admin listing projection.
type UserSummary struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type UserID struct {
	UserID int64 `json:"user_id"`
}

// LoginResult is returned on a successful password check.
type LoginResult struct {
	UserID   int64  `json:"user_id"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

type NewUser struct {
	Password    *string `json:"password" validate:"required"`
	DisplayName *string `json:"display_name" validate:"required"`
	Username    *string `json:"username" validate:"required"`
}

type UserPatch struct {
	Password    *string `json:"password"`
	DisplayName *string `json:"display_name"`
	Username    *string `json:"username"`
}

func (p UserPatch) Assignments() Assignments {
	var a Assignments
	a = a.String("password", p.Password)
	a = a.String("display_name", p.DisplayName)
	a = a.String("username", p.Username)
	return a
}
