package httpx

import (
	"net/http"
	"strings"

	"bookshelf/internal/auth"
)

// AuthMiddleware rejects requests without a valid bearer token before
// any validation or store access happens. The session is consumed as an
// opaque valid-or-not fact; token issuance lives outside this service.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(r, w, http.StatusUnauthorized, CodeUnauthorized, "missing or invalid session", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONError(r, w, http.StatusUnauthorized, CodeUnauthorized, "missing or invalid session", nil)
				return
			}

			ctx := ContextWithSubject(r.Context(), claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
