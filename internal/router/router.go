// Package router sets up all HTTP routes and middleware chains for
// Inkwell. Public blog routes serve theme.css and the live styling socket;
// the /api group carries the write endpoints, which are expected to sit
// behind the platform's access control.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/web"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	API        *handlers.API
	Stylesheet *handlers.Stylesheet
	Live       *handlers.Live
	// WriteLimit rate-limits API writes by client IP. Optional.
	WriteLimit    *middleware.RateLimiter
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.Visitor(h.SecureCookies))
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	static, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	}

	// Blog-facing routes.
	r.Route("/blogs/{slug}", func(r chi.Router) {
		r.Use(middleware.ColorSchemeHints)
		r.Method(http.MethodGet, "/theme.css", h.Stylesheet)
		r.Method(http.MethodGet, "/live", h.Live)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/themes", h.API.ListThemes)
		r.Get("/themes/{id}", h.API.GetTheme)
		r.Get("/blogs", h.API.ListBlogs)
		r.Get("/blogs/{slug}", h.API.GetBlog)
		r.Method(http.MethodGet, "/blogs/{slug}/live", h.Live.Editor())

		r.Group(func(r chi.Router) {
			if h.WriteLimit != nil {
				r.Use(h.WriteLimit.Middleware)
			}
			r.Put("/themes/{id}", h.API.UpdateTheme)
			r.Put("/blogs/{slug}/customization", h.API.UpdateCustomization)
			r.Put("/blogs/{slug}/theme", h.API.SetTheme)
			r.Put("/blogs/{slug}/preference", h.API.SetPreference)
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
