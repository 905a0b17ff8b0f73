package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/example/monitor/internal/httpserver/deps"
	"github.com/example/monitor/internal/httpserver/handlers"
)

func mountHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
}
