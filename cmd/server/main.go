package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/iho/gobank/internal/adapter/http"
	"github.com/iho/gobank/internal/adapter/http/handler"
	postgresRepo "github.com/iho/gobank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gobank/internal/adapter/repository/redis"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/exchange"
	"github.com/iho/gobank/internal/infrastructure/logger"
	"github.com/iho/gobank/internal/infrastructure/notification"
	"github.com/iho/gobank/internal/infrastructure/postgres"
	"github.com/iho/gobank/internal/infrastructure/redis"
	"github.com/iho/gobank/internal/scheduler"
	"github.com/iho/gobank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories and collaborators
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	activityRepo := postgresRepo.NewActivityRepository(pool)
	orderRepo := postgresRepo.NewOrderRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)

	var notifier usecase.NotificationSender
	if cfg.NotificationEndpoint != "" {
		notifier = notification.NewHTTPSender(cfg.NotificationEndpoint, log)
	} else {
		notifier = notification.NewLogSender(log)
	}

	rates := exchange.NewCachedProvider(exchange.NewStaticProvider(), cache, cfg.RateCacheTTL, log)

	// Use cases
	balanceUC := usecase.NewBalanceUseCase(txManager, accountRepo, activityRepo, notifier, idGen, log)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, activityRepo, customerRepo, balanceUC, notifier, idGen, usecase.SystemClock{}, log)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, activityRepo, rates, notifier, idGen, log).
		WithRetrier(postgresRepo.NewRetrier(log))
	orderUC := usecase.NewOrderUseCase(orderRepo, accountRepo, idGen, usecase.SystemClock{}, log)
	activityUC := usecase.NewActivityUseCase(activityRepo)

	// Recurring transfer scheduler
	recurring := scheduler.New(scheduler.Config{
		Orders:    orderUC,
		Transfers: transferUC,
		Interval:  cfg.SchedulerInterval,
		Logger:    log,
	})

	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()

	go func() {
		if err := recurring.Start(schedulerCtx); err != nil && schedulerCtx.Err() == nil {
			log.Error().Err(err).Msg("scheduler stopped unexpectedly")
		}
	}()

	// HTTP layer
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC),
		BalanceHandler:  handler.NewBalanceHandler(balanceUC),
		TransferHandler: handler.NewTransferHandler(transferUC),
		OrderHandler:    handler.NewOrderHandler(orderUC),
		ActivityHandler: handler.NewActivityHandler(activityUC),
		HealthHandler:   handler.NewHealthHandler(pool, redisClient),
		Logger:          log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
