package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "admin@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(uuid.New(), "a@b.c", "donor")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Nanosecond)

	token, err := svc.GenerateToken(uuid.New(), "a@b.c", "donor")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
