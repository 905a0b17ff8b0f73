package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/example/monitor/internal/httpserver/deps"
	"github.com/example/monitor/internal/logger"
)

// Group is a named set of routes mounted on the root router.
type Group struct {
	Name  string
	Mount func(r chi.Router, d deps.Deps)
}

// Groups lists every route group in mount order.
var Groups = []Group{
	{Name: "health", Mount: mountHealth},
	{Name: "services", Mount: mountServices},
}

// Mount attaches every group to r.
func Mount(r chi.Router, d deps.Deps) {
	for _, g := range Groups {
		g.Mount(r, d)
		if d.Logger != nil {
			d.Logger.Debug("mounted route group", logger.String("group", g.Name))
		}
	}
}
