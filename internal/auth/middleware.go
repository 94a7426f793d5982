package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const StaffIDKey contextKey = "staffID"

// Middleware guards the admin API; board and health endpoints stay outside
// it.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid authorization format"})
			return
		}

		staffID, err := s.ValidateToken(parts[1])
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), StaffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func StaffIDFromContext(ctx context.Context) string {
	staffID, _ := ctx.Value(StaffIDKey).(string)
	return staffID
}
