package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testKey, 42, "curl/8.0")
	require.NoError(t, err)

	id, claims, err := ParseToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(testKey, 1, "")
	require.NoError(t, err)

	_, _, err = ParseToken([]byte("another-key-of-enough-length!!"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, _, err = ParseToken(testKey, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseToken_RejectsBadSubject(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "not-a-number",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, _, err = ParseToken(testKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, _, err := ParseToken(testKey, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
