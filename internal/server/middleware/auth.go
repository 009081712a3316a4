// Package middleware holds the HTTP middleware of the API: bearer authentication and request logging.
package middleware

import (
	"net/http"
	"strings"

	"jobpilot/backend/internal/platform/httpx"
	"jobpilot/backend/internal/security"
)

const bearerPrefix = "bearer "

const (
	MsgNoToken     = "not authorized, no token"
	MsgTokenFailed = "not authorized, token failed"
)

// Auth rejects requests without a valid session token and stores the caller's identity in the context.
func Auth(tokens *security.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				httpx.Fail(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			claims, err := tokens.ValidateSession(token)
			if err != nil || claims.Subject == "" {
				httpx.Fail(w, http.StatusUnauthorized, MsgTokenFailed)
				return
			}
			ctx := WithIdentity(r.Context(), claims.Subject, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer returns the Bearer token from the Authorization header, or "" if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
