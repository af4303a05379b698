package security

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("test123")
	require.NoError(t, err)

	assert.NotEqual(t, "test123", hash)
	assert.True(t, CheckPasswordHash("test123", hash))
	assert.False(t, CheckPasswordHash("test124", hash))
	assert.False(t, CheckPasswordHash("test123", "test123"))
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)

	token, err := issuer.GenerateToken(42, "john@gmail.com")
	require.NoError(t, err)

	decoded, err := issuer.Auth.Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	id, err := GetUserIDFromClaims(jwt.MapClaims(claims))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "john@gmail.com", claims["username"])
	assert.NotEmpty(t, claims["jti"])
}

func TestGetUserIDFromClaims(t *testing.T) {
	_, err := GetUserIDFromClaims(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = GetUserIDFromClaims(jwt.MapClaims{"user_id": "abc"})
	assert.Error(t, err)
}
