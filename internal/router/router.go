// Package router sets up all HTTP routes and middleware chains for the
// blog API. It organizes routes into public reads, admin-gated writes and
// the OAuth2 authentication flow.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"devblog/internal/handlers"
	"devblog/internal/middleware"
	"devblog/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, posts *handlers.Posts, categories *handlers.Categories, auth *handlers.Auth, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Posts — reads are public (visibility filtering happens inside the
	// listing handler), writes require the admin session.
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Get("/{id}", posts.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", posts.Create)
			r.Put("/{id}", posts.Update)
			r.Delete("/{id}", posts.Delete)
		})
	})

	// Categories — same split as posts.
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categories.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Rename)
			r.Delete("/{id}", categories.Delete)
		})
	})

	// Authentication — the OAuth2 endpoints are rate limited to slow
	// down login hammering.
	limiter := middleware.NewRateLimiter(30, time.Minute)
	r.Route("/auth", func(r chi.Router) {
		r.Get("/user", auth.CurrentUser)
		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Get("/github/login", auth.Login)
			r.Get("/github/callback", auth.Callback)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
