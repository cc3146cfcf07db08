package httpx

import (
	"net/http"
	"strings"

	"booklib/internal/auth"
)

func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
				return
			}

			userID := claims.UserID()
			if userID == 0 {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token subject", nil)
				return
			}

			ctx := ContextWithUser(r.Context(), userID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
