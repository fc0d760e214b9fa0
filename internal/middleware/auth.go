package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/teamjokbo/jokbo/internal/ctxkeys"
	"github.com/teamjokbo/jokbo/internal/repository"
	"github.com/teamjokbo/jokbo/internal/service"
)

// AuthMiddleware resolves the session cookie to a user and adds it to the
// request context. Any verification failure clears the cookie and continues
// unauthenticated.
func AuthMiddleware(authService *service.AuthService, userRepository repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := authService.SessionCookie(r)
			if err != nil {
				// No cookie, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepository.ByID(userID)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth gates API routes on an authenticated session. The error body
// keeps the same {"error": ...} shape as every other API response.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			jsonError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	}
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
