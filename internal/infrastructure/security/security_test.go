package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret")
	token, err := m.Generate("ops", RoleAdmin, time.Minute)
	require.NoError(t, err)

	sub, role, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)
	assert.Equal(t, RoleAdmin, role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("a").Generate("ops", RoleAdmin, time.Minute)
	require.NoError(t, err)

	_, _, err = NewTokenManager("b").Validate(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret")
	token, err := m.Generate("ops", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, _, err = m.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenRejectsRefreshType(t *testing.T) {
	secret := []byte("secret")
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ops",
		"exp":  time.Now().Add(time.Minute).Unix(),
		"type": "refresh",
	}).SignedString(secret)
	require.NoError(t, err)

	_, _, err = NewTokenManager("secret").Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeyHasher(t *testing.T) {
	h := NewKeyHasher()
	hash, err := h.Hash("s3cr3t")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "s3cr3t"))
	assert.NoError(t, h.Compare(hash, "s3cr3t\n"))
	assert.ErrorIs(t, h.Compare(hash, "guess"), ErrInvalidKey)
	assert.ErrorIs(t, h.Compare(hash, "  "), ErrEmptyKey)
	assert.Error(t, h.Compare("not-a-bcrypt-hash", "s3cr3t"))
}

func TestKeyHasherRejectsEmptyKey(t *testing.T) {
	_, err := NewKeyHasher().Hash(" \n")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
