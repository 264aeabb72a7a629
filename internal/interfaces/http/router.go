// Package http wires the chi route tree and the HTTP server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/prometheus"
	"github.com/CodingBot000/miracle3day-sub008/internal/interfaces/http/handlers"
	"github.com/CodingBot000/miracle3day-sub008/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	RecommendHandler *handlers.RecommendHandler
	HealthHandler    *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.AppMetrics

	// MaxBodySize bounds request body size in bytes; 0 disables the limit.
	MaxBodySize int64
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.Recovery(cfg.Logger))
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.Metrics, middleware.DefaultLoggingConfig()))
	} else {
		r.Use(chimw.Recoverer)
	}
	if cfg.MaxBodySize > 0 {
		r.Use(limitBody(cfg.MaxBodySize))
	}

	r.Group(func(pub chi.Router) {
		if cfg.HealthHandler != nil {
			pub.Get("/healthz", cfg.HealthHandler.Liveness)
			pub.Get("/readyz", cfg.HealthHandler.Readiness)
		}
	})

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RecommendHandler != nil {
			api.Post("/recommend_estimate", cfg.RecommendHandler.Estimate)
			api.Get("/recommend_estimate", cfg.RecommendHandler.Liveness)
		}
	})

	return r
}

// limitBody caps the readable request body size.
func limitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
