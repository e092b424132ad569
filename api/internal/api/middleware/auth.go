package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const SubjectKey contextKey = "subject"

// TokenVerifier checks a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// TokenGuard admits requests carrying a bearer token the verifier accepts.
// It holds no user store: any valid, unexpired token passes.
type TokenGuard struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

func NewTokenGuard(verifier TokenVerifier, logger *slog.Logger) *TokenGuard {
	return &TokenGuard{
		verifier: verifier,
		logger:   logger,
	}
}

func (g *TokenGuard) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			http.Error(w, `{"message": "Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		subject, err := g.verifier.Verify(tokenStr)
		if err != nil {
			g.logger.Warn("Rejected bearer token", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
			http.Error(w, `{"message": "Invalid token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
