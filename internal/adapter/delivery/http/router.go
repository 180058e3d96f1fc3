// Package http provides the HTTP delivery layer for the short link service.
// It exposes the registry as a JSON API under /api/v1 and redirects short
// codes requested at the root.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/i18n"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the short link API.
// baseURL is the origin short URLs are built under.
func NewRouter(logger *httplog.Logger, registry urlRegistry, logs logBuffer, tr *i18n.Translator, baseURL string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Accept-Language"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(tr.Middleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	h := newURLHandler(registry, tr, validator.New(), baseURL)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/urls", func(r chi.Router) {
			r.Post("/", h.createURLs)
			r.Get("/", h.listURLs)
			// {key} is a short code for GET and a record id for DELETE.
			r.Get("/{key}", h.getURL)
			r.Delete("/{key}", h.deleteURL)
		})

		r.Get("/stats", h.getStats)

		r.Route("/logs", func(r chi.Router) {
			lh := newLogHandler(logs)

			r.Get("/", lh.getLogs)
			r.Delete("/", lh.clearLogs)
		})
	})

	r.Get("/{shortCode}", h.redirect)

	return r
}
