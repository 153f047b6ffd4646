package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopsmart-labs/shopsmart-backend/api/controllers"
	"github.com/shopsmart-labs/shopsmart-backend/api/middleware"
	"github.com/shopsmart-labs/shopsmart-backend/internal/cartopt"
	"github.com/shopsmart-labs/shopsmart-backend/internal/delivery"
	"github.com/shopsmart-labs/shopsmart-backend/internal/ranking"
	"github.com/shopsmart-labs/shopsmart-backend/internal/search"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/config"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/redis"
)

// NewRouter wires the decision-pipeline endpoints behind the shared
// middleware stack.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	cachePinger redis.Pinger,
	registry *prometheus.Registry,
	searchService search.Service,
	rankingService ranking.Service,
	deliveryService delivery.Service,
	cartService cartopt.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cachePinger))
	})
	r.Get("/healthz", controllers.HealthLive(cfg))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/intent", controllers.ResolveIntent(logg))
		r.Post("/search", controllers.Search(searchService, rankingService, logg))
		r.Post("/delivery/optimize", controllers.OptimizeDelivery(deliveryService, logg))
		r.Post("/cart/optimize", controllers.OptimizeCart(cartService, logg))
	})

	return r
}
