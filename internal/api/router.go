package api

import (
	"delivery-zone-service/internal/api/handlers"
	"delivery-zone-service/internal/platform/metrics"
	"delivery-zone-service/internal/ports"
	"delivery-zone-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Stores        ports.StoreRepository
	Sessions      *services.SessionRegistry
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	AllowedOrigin string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	storeHandler := &handlers.StoreHandler{Repo: cfg.Stores}
	sessionHandler := &handlers.SessionHandler{
		Sessions: cfg.Sessions,
		Metrics:  cfg.Metrics,
	}

	r.Get("/health", handlers.Health)
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/stores", storeHandler.List)

		r.Post("/sessions", sessionHandler.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.Delete)
			r.Put("/location", sessionHandler.SetLocation)
			r.Delete("/location", sessionHandler.ClearLocation)
			r.Post("/check", sessionHandler.Check)
		})
	})

	return r
}
