package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	jwtAuth := New("secret")
	tok, err := NewToken(jwtAuth, time.Hour, "analyst")
	require.NoError(t, err)

	sub, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, "analyst", sub)

	_, err = VerifyToken(New("other"), tok)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	jwtAuth := New("secret")
	tok, err := NewToken(jwtAuth, -time.Hour, "analyst")
	require.NoError(t, err)

	_, err = VerifyToken(jwtAuth, tok)
	assert.Error(t, err)
}

func TestTokenWithoutSubject(t *testing.T) {
	jwtAuth := New("secret")
	tok, err := NewToken(jwtAuth, time.Hour, "")
	require.NoError(t, err)

	_, err = VerifyToken(jwtAuth, tok)
	assert.ErrorIs(t, err, ErrNoSubject)
}
