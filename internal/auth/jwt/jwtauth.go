package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

var ErrNoSubject = errors.New("token has no subject")

// New returns an HS256 signer for secret.
func New(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// VerifyToken checks signature and expiry and returns the subject of token.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	if t.Subject() == "" {
		return "", ErrNoSubject
	}
	return t.Subject(), nil
}

// NewToken issues a token for subject valid for ttl.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject string) (string, error) {
	claims := map[string]interface{}{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return ts, nil
}
