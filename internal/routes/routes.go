package routes

import (
	"net/http"

	"github.com/teamjokbo/jokbo/internal/app"
	"github.com/teamjokbo/jokbo/internal/handler"
	"github.com/teamjokbo/jokbo/internal/middleware"
	"github.com/teamjokbo/jokbo/internal/web"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserRepository)
	entry := handler.NewEntryHandler(app.EntryService)
	attachment := handler.NewAttachmentHandler(app.AttachmentService)
	options := handler.NewOptionsHandler()
	events := handler.NewEventsHandler(app.Hub, app.Cfg.TeamID)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Home
	mux.HandleFunc("GET /{$}", web.Handler())

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /auth/magic-link", rateLimiter(auth.SendMagicLink))
	mux.HandleFunc("GET /auth/magic-link/{token}", auth.VerifyMagicLink)
	mux.HandleFunc("GET /auth/callback", auth.Callback)
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	mux.HandleFunc("GET /api/session", middleware.RequireAuth(auth.Session))

	mux.HandleFunc("GET /api/entries", middleware.RequireAuth(entry.List))
	mux.HandleFunc("POST /api/entries", middleware.RequireAuth(entry.Create))
	mux.HandleFunc("PUT /api/entries/{id}", middleware.RequireAuth(entry.Update))

	mux.HandleFunc("GET /api/attachments/refresh", middleware.RequireAuth(attachment.Refresh))
	mux.HandleFunc("GET /api/options/{kind}", middleware.RequireAuth(options.List))
	mux.HandleFunc("GET /api/events", middleware.RequireAuth(events.Stream))

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserRepository),
	)

	return h
}
