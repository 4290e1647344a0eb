package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/mcoot/zonehunt/internal/api/apierr"
	"github.com/mcoot/zonehunt/internal/model"
)

// Director creates middleware that requires the director key as a bearer token.
// An empty key leaves the routes open.
func Director(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
				apierr.WriteError(w, model.ErrNotDirector)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to a query parameter for EventSource clients that cannot set headers
	return r.URL.Query().Get("key")
}
