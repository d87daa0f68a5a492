package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katakonsumen/review-service/pkg/health"
	"github.com/katakonsumen/review-service/pkg/middleware"
)

// RouterConfig carries the router-level settings.
type RouterConfig struct {
	ServiceName    string
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter assembles the chi router with the full middleware stack and all
// review, wishlist, and operational routes.
func NewRouter(
	cfg RouterConfig,
	reviews *ReviewHandler,
	wishlist *WishlistHandler,
	healthHandler *health.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", reviews.Create)
			r.Post("/search", reviews.Search)
			r.Post("/detail", reviews.Detail)
			r.Post("/get-by-username", reviews.GetByUsername)
			r.Post("/delete-by-id", reviews.DeleteByID)
			r.Post("/delete-all-by-username", reviews.DeleteAllByUsername)
			r.Post("/delete-all-by-source", reviews.DeleteAllBySource)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Post("/", wishlist.Create)
			r.Post("/search", wishlist.Search)
			r.Post("/delete-by-username-and-title", wishlist.DeleteByUsernameAndTitle)
			r.Post("/delete-all-by-username", wishlist.DeleteAllByUsername)
		})
	})

	return r
}
