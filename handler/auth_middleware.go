package handler

import (
	"context"
	"finance-tracker/common"
	"net/http"
	"strings"
)

type contextKey string

const UsernameKey contextKey = "username"

// TokenVerifier returns the identity embedded in a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid "Authorization: Bearer"
// token and stores the token's username in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.Unauthorized("Authorization header is required", nil).Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				common.Unauthorized("Invalid authorization header format", nil).Send(w)
				return
			}

			username, err := verifier.Verify(headerParts[1])
			if err != nil {
				common.Unauthorized("Invalid or expired token", err).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the username set by AuthMiddleware.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
