package httpapi

import (
	"net/http"
	"strings"

	"github.com/weekendsync/availability-api/internal/domain"
)

// NewAuthMiddleware enforces Authorization: Bearer <token> for all versioned
// endpoints, resolving the token against a static token→user map.
//
// On success, it stores the authenticated user ID in request context.
func NewAuthMiddleware(tokens map[string]domain.UserID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health endpoint is outside the versioned API and unauthenticated.
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			authz := r.Header.Get("Authorization")
			if authz == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing Authorization header", nil)
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(authz, prefix) {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "malformed Authorization header", nil)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
			if raw == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}

			user, ok := tokens[raw]
			if !ok || user == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// NewDevAuthMiddleware is a local/dev-only auth shim.
//
// It accepts an explicit user via X-Debug-User and stores it in request
// context. If the header is absent, it falls back to defaultUser (if
// provided).
//
// This is intended for local Docker workflows where standing up a real
// identity provider is overkill. Do NOT use this in production deployments.
func NewDevAuthMiddleware(defaultUser domain.UserID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health endpoint is outside the versioned API and unauthenticated.
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			user := domain.UserID(strings.TrimSpace(r.Header.Get("X-Debug-User")))
			if user == "" {
				user = domain.UserID(strings.TrimSpace(string(defaultUser)))
			}
			if user == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing user (set X-Debug-User)", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
