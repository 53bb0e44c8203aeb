package main

import (
	"fmt"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JaimeStill/unidelivery/internal/config"
	"github.com/JaimeStill/unidelivery/internal/metrics"
	"github.com/JaimeStill/unidelivery/internal/tables"
	"github.com/JaimeStill/unidelivery/pkg/middleware"
	"github.com/JaimeStill/unidelivery/pkg/module"
	"github.com/JaimeStill/unidelivery/pkg/navigation"
	"github.com/JaimeStill/unidelivery/web/app"
	"github.com/JaimeStill/unidelivery/web/views"
)

// buildHandler assembles the views, the route table for the configured
// role, the metrics and the root router with the app module mounted.
func buildHandler(cfg *config.Config, logger *slog.Logger, ready func() bool) (*module.Router, *navigation.Table, error) {
	set, err := views.New(cfg.App.BasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("views init failed: %w", err)
	}

	table, err := tables.New(cfg.App.Role, set.Views())
	if err != nil {
		return nil, nil, fmt.Errorf("route table init failed: %w", err)
	}

	m := metrics.New()
	m.ObserveTable(string(cfg.App.Role), table.Len())

	router := buildRouter(cfg, logger, m, ready)
	router.Mount(newAppModule(cfg, logger, m, set, table))
	return router, table, nil
}

func newAppModule(
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
	set *views.Set,
	table *navigation.Table,
) *module.Module {
	appModule := app.NewModule(app.Config{
		BasePath: cfg.App.BasePath,
		Role:     cfg.App.Role,
		Fallback: cfg.App.Fallback,
		Table:    table,
		Views:    set,
		Logger:   logger,
		Metrics:  m,
	})
	appModule.Use(middleware.CORS(&cfg.App.CORS))
	return appModule
}

// buildRouter creates the root router with request middleware, the
// infrastructure endpoints and a redirect from / to the app module.
func buildRouter(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics, ready func() bool) *module.Router {
	router := module.NewRouter(
		chimw.RequestID,
		chimw.Recoverer,
		middleware.Logger(logger),
	)

	router.HandleFunc(http.MethodGet, "/healthz", handleHealthCheck)
	router.HandleFunc(http.MethodGet, "/readyz", func(w http.ResponseWriter, r *http.Request) {
		handleReadinessCheck(w, ready)
	})
	router.Handle("/metrics", m.Handler())
	router.Redirect("/", cfg.App.BasePath)

	return router
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready func() bool) {
	if !ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
