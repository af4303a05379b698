package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenIssuer struct {
	Auth *jwtauth.JWTAuth
	exp  time.Duration
}

func NewTokenIssuer(key []byte, exp time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Auth: jwtauth.New("HS256", key, nil),
		exp:  exp,
	}
}

func (t *TokenIssuer) GenerateToken(userID int64, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  strconv.FormatInt(userID, 10),
		"username": username,
		"jti":      uuid.NewString(),
		"exp":      now.Add(t.exp).Unix(),
		"iat":      now.Unix(),
	}
	_, tokenString, err := t.Auth.Encode(claims)
	return tokenString, err
}

// GetUserIDFromClaims extracts the numeric user id from verified token claims.
func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, errors.New("user_id claim is missing or not a string")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("user_id claim is not numeric")
	}
	return id, nil
}
