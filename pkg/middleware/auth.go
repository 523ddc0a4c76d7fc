package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// HeaderAuthToken is the request header carrying the raw signed token.
// The value is the token itself, with no "Bearer " prefix.
const HeaderAuthToken = "x-auth-token"

type contextKeyType string

const userIDKey contextKeyType = "user_id"

// Claims represents the token claims extracted by the auth gate.
type Claims struct {
	UserID string `json:"user_id"`
}

// TokenValidator is a function that verifies a signed token and returns its
// claims. The service injects its own verification logic so this package
// stays free of any particular signing library.
type TokenValidator func(token string) (*Claims, error)

// Auth is the single authorization checkpoint for protected routes. It reads
// the x-auth-token header, verifies the token, and puts the resolved user id
// into the request context. Handlers behind it never re-check identity.
//
// A missing header and an invalid (tampered or expired) token both produce
// 401; the response never reveals whether a bad token was expired or
// tampered with. The distinction is visible only in the debug log.
func Auth(validate TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderAuthToken)
			if token == "" {
				logger.DebugContext(r.Context(), "auth rejected: missing credential",
					slog.String("path", r.URL.Path),
				)
				writeAuthError(w, "authentication token required")
				return
			}

			claims, err := validate(token)
			if err != nil {
				logger.DebugContext(r.Context(), "auth rejected: invalid credential",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				writeAuthError(w, "invalid authentication token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request
// context. Returns "" when the request did not pass through Auth.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
