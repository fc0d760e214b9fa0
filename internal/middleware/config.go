package middleware

import (
	"net/http"

	"github.com/teamjokbo/jokbo/internal/config"
	"github.com/teamjokbo/jokbo/internal/ctxkeys"
)

// Config adds the sanitized app configuration to the request context.
// Secrets like JWTSecret and S3 credentials are excluded.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), cfg.Sanitized())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
