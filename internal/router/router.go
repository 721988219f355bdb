// Package router sets up all HTTP routes and middleware chains for the
// LinkStash API. Link reads are public; every other operation requires an
// authenticated session.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linkstash/internal/handlers"
	"linkstash/internal/middleware"
	"linkstash/internal/session"
)

// Rate limit for the whole API: generous enough for a dashboard polling
// the listing, tight enough to blunt abuse of the open read routes.
const (
	rateLimit  = 300
	rateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, links *handlers.Links, categories *handlers.Categories, auth *handlers.Auth) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.NewRateLimiter(rateLimit, rateWindow).Middleware)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Authentication.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
	})

	// Links — reads are public, writes are gated.
	r.Route("/link", func(r chi.Router) {
		r.Get("/", links.List)
		r.Get("/{id}", links.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", links.Create)
			r.Put("/{id}", links.Update)
			r.Delete("/{id}", links.Delete)
			r.Post("/{id}/image", links.UploadImage)
		})
	})

	// Categories — everything gated, reads included.
	r.Route("/category", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", categories.List)
		r.Post("/", categories.Create)
		r.Get("/{uid}", categories.Get)
		r.Put("/{uid}", categories.Update)
		r.Delete("/{uid}", categories.Delete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
