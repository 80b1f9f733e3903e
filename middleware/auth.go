package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const UserKeyKey contextKey = "userKey"

// AuthMiddleware extracts the caller's opaque user key from the
// Authorization header. Session validation is the upstream auth
// collaborator's job; this service only needs a stable per-user identity to
// key its stores by.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		userKey := strings.TrimPrefix(authHeader, "Bearer ")
		if userKey == authHeader || strings.TrimSpace(userKey) == "" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization format. Use 'Bearer <key>'")
			return
		}

		ctx := context.WithValue(r.Context(), UserKeyKey, strings.TrimSpace(userKey))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserKey retrieves the authenticated user key from context.
func GetUserKey(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(UserKeyKey).(string)
	return key, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
