package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler  *handler.AccountHandler
	BalanceHandler  *handler.BalanceHandler
	TransferHandler *handler.TransferHandler
	OrderHandler    *handler.OrderHandler
	ActivityHandler *handler.ActivityHandler
	HealthHandler   *handler.HealthHandler
	Logger          zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Post("/{id}/close", cfg.AccountHandler.Close)
			r.Post("/{id}/interest", cfg.AccountHandler.PayInterest)
			r.Post("/{id}/deposit", cfg.BalanceHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.BalanceHandler.Withdraw)
			r.Get("/{id}/activities", cfg.ActivityHandler.ListByAccount)
		})

		// Transfers and exchanges
		r.Post("/transfers", cfg.TransferHandler.Transfer)
		r.Post("/exchanges", cfg.TransferHandler.Exchange)

		// Regular transfer orders
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.OrderHandler.Create)
			r.Get("/", cfg.OrderHandler.List)
			r.Get("/{id}", cfg.OrderHandler.Get)
			r.Put("/{id}", cfg.OrderHandler.Update)
			r.Delete("/{id}", cfg.OrderHandler.Delete)
		})

		// Activity log
		r.Get("/activities/{id}", cfg.ActivityHandler.Get)

		// Statistics
		r.Route("/statistics", func(r chi.Router) {
			r.Get("/accounts/count", cfg.AccountHandler.CountActive)
			r.Get("/customers/max-balance", cfg.AccountHandler.MaxBalanceCustomers)
		})
	})

	return r
}
