package wire

import (
	"context"
	"net/http"
	"time"

	"lawncare-booking/internal/adaptor"
	"lawncare-booking/internal/data/repository"
	"lawncare-booking/internal/usecase"
	"lawncare-booking/pkg/middleware"
	"lawncare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

// App holds the wired router and the services main needs at startup.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes around one repository set.
// health may be nil when there is nothing external to ping.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	registry *prometheus.Registry,
	health HealthCheck,
	logger *zap.Logger,
) *App {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	service := usecase.NewService(repo, config, usecase.NewBookingMetrics(registry), logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, registry, health, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	registry *prometheus.Registry,
	health HealthCheck,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigin))
	r.Use(middleware.Metrics(middleware.NewHTTPMetrics(registry)))

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireBooking(r, handler.Booking)
	wireAdmin(r, handler.Admin, repo, logger)

	r.Get("/health", healthHandler(health, logger))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

func healthHandler(health HealthCheck, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("UNAVAILABLE"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
