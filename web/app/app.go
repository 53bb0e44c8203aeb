// Package app hosts the route table of one application variant over HTTP.
// Page requests under the module prefix are resolved through the table and
// render the matched view; the API exposes the table and its resolution.
package app

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JaimeStill/unidelivery/internal/shell"
	"github.com/JaimeStill/unidelivery/internal/tables"
	"github.com/JaimeStill/unidelivery/pkg/middleware"
	"github.com/JaimeStill/unidelivery/pkg/module"
	"github.com/JaimeStill/unidelivery/pkg/navigation"
	"github.com/JaimeStill/unidelivery/pkg/routes"
	"github.com/JaimeStill/unidelivery/web/views"
)

// ErrMissingTarget is returned by the resolve endpoint when neither a path
// nor a route name is given.
var ErrMissingTarget = errors.New("path or name required")

// Config carries the dependencies of the app module.
type Config struct {
	BasePath string
	Role     tables.Role
	Fallback shell.Policy
	Table    *navigation.Table
	Views    *views.Set
	Logger   *slog.Logger
	// Metrics is optional.
	Metrics shell.Recorder
}

// NewModule builds the app module mounted at cfg.BasePath.
func NewModule(cfg Config) *module.Module {
	h := newHandler(cfg)

	api := h.Routes()
	r := chi.NewRouter()
	routes.Register(r, api)
	r.Get("/*", h.Page)

	h.logger.Info("app module routes",
		"base_path", cfg.BasePath,
		"api", api.Description,
		"patterns", routes.Patterns(api),
		"table", cfg.Table.Names(),
	)

	m := module.New(cfg.BasePath, r)
	m.Use(middleware.TrimSlash())
	return m
}

// Routes returns the API route group of the module.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/api",
		Description: "Route table inspection and resolution",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/routes", Handler: h.ListRoutes},
			{Method: http.MethodGet, Pattern: "/resolve", Handler: h.Resolve},
		},
	}
}
