package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	tokenString, err := GenerateToken(key, 42, "Maria Silva", "Mozilla/5.0")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(key, tokenString)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Maria Silva", claims.Name)
	assert.Equal(t, "Mozilla/5.0", claims.UserAgent)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	tokenString, err := GenerateToken([]byte("key-one"), 42, "Maria", "")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
