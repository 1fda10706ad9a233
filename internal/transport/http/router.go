package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fuelmx/internal/config"
	"fuelmx/internal/middleware"
	"fuelmx/pkg/contracts/domain"
)

// NewRouter assembles the full server router: middleware chain, the results
// API under /api, and the Prometheus endpoint at /metrics.
func NewRouter(cfg config.ServerConfig, results *domain.ResultSet, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := middleware.NewRequestMetrics(registry)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(metrics.Handler)
	r.Use(middleware.Compress(5))

	r.Route("/api", func(api chi.Router) {
		api.Use(limiter.Handler)
		api.Mount("/", NewResultsHandler(results, logger).Routes())
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
