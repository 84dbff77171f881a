package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/botbee/botbee-backend/internal/pkg/response"
)

type contextKey string

const userIDKey contextKey = "user_id"

const userIDHeader = "X-User-ID"

// Auth requires a valid X-User-ID header and puts the caller identity into
// the request context. Identity verification itself happens upstream at the
// gateway; this service only scopes data access by the forwarded ID.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if _, err := uuid.Parse(userID); err != nil {
			response.Error(w, http.StatusUnauthorized, "missing or invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated caller ID, or empty outside Auth routes.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
