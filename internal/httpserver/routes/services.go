package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/monitor/internal/httpserver/deps"
	"github.com/example/monitor/internal/httpserver/handlers"
)

// DefaultRequestTimeout applies when the server is built without one.
const DefaultRequestTimeout = 5 * time.Second

func mountServices(r chi.Router, d deps.Deps) {
	r.Route("/api/services", func(r chi.Router) {
		// The stream is long-lived and stays outside the request timeout.
		r.Get("/{id}/status/stream", handlers.StatusStream(d))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout(d)))

			r.Get("/", handlers.ListServices(d))
			r.Post("/", handlers.CreateService(d))
			r.Get("/lookup", handlers.LookupService(d))
			r.Get("/{id}", handlers.GetService(d))
			r.Get("/{id}/status", handlers.GetStatus(d))
			r.Post("/{id}/status", handlers.RecordStatus(d))
			r.Get("/{id}/status/history", handlers.StatusHistory(d))
		})
	})
}

func requestTimeout(d deps.Deps) time.Duration {
	if d.RequestTimeout > 0 {
		return d.RequestTimeout
	}
	return DefaultRequestTimeout
}
