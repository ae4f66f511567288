package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/ports/auth"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerifier_ValidToken(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	tok := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"user_id": 42,
		"email":   "vet@clinic.test",
		"role":    "vet",
		"exp":     exp.Unix(),
	})

	claims, err := NewVerifier(secret).Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "vet@clinic.test", claims.Email)
	assert.Equal(t, "vet", claims.Role)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestVerifier_Rejects(t *testing.T) {
	valid := jwt.MapClaims{"user_id": "7", "exp": time.Now().Add(time.Minute).Unix()}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong_secret", sign(t, jwt.SigningMethodHS256, []byte("other"), valid)},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "7", "exp": time.Now().Add(-time.Minute).Unix()})},
		{"no_exp", sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "7"})},
		{"no_user", sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()})},
		{"other_alg", sign(t, jwt.SigningMethodHS512, []byte(secret), valid)},
		{"garbage", "not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVerifier(secret).Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestVerifier_NotConfigured(t *testing.T) {
	_, err := NewVerifier("").Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewVerifier(secret).Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
