package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/movematch/movematch-backend/api/controllers"
	"github.com/movematch/movematch-backend/api/middleware"
	"github.com/movematch/movematch-backend/internal/comparison"
	"github.com/movematch/movematch-backend/pkg/config"
	"github.com/movematch/movematch-backend/pkg/db"
	"github.com/movematch/movematch-backend/pkg/logger"
	"github.com/movematch/movematch-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface of the comparison API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	comparisonService comparison.Service,
	promRegistry *prometheus.Registry,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/orders/{orderId}/comparison", func(r chi.Router) {
			r.Post("/", controllers.GenerateComparison(comparisonService, logg))
			r.Get("/", controllers.GetComparison(comparisonService, logg))
			r.Post("/select", controllers.SelectComparisonEntry(comparisonService, logg))
		})

		r.Post("/pricing/preview", controllers.PricingPreview(comparisonService, logg))
	})

	return r
}
