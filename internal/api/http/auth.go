package httpapi

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-analytics/internal/auth/jwt"
)

var errNoToken = errors.New("no bearer token")

// requireToken rejects requests whose bearer token was not signed with the configured secret.
func (s *Server) requireToken(next http.Handler) http.Handler {
	ja := jwt.New(s.c.JWTSecret)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := jwtauth.TokenFromHeader(r)
		if token == "" {
			render.Render(w, r, ErrUnauthorized(errNoToken))
			return
		}
		sub, err := jwt.VerifyToken(ja, token)
		if err != nil {
			slog.Default().InfoContext(r.Context(), "rejected analytics token",
				slog.String("err", err.Error()),
			)
			render.Render(w, r, ErrUnauthorized(err))
			return
		}
		slog.Default().DebugContext(r.Context(), "analytics request",
			slog.String("subject", sub),
			slog.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}
