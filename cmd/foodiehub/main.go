package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
	"github.com/ravikiran1811/foodie-hub/internal/app"
	"github.com/ravikiran1811/foodie-hub/internal/auth"
	"github.com/ravikiran1811/foodie-hub/internal/dashboard"
	"github.com/ravikiran1811/foodie-hub/internal/observability"
	"github.com/ravikiran1811/foodie-hub/internal/orders"
	"github.com/ravikiran1811/foodie-hub/internal/payments"
	"github.com/ravikiran1811/foodie-hub/internal/platform/cache"
	"github.com/ravikiran1811/foodie-hub/internal/platform/db"
	"github.com/ravikiran1811/foodie-hub/internal/restaurants"
	"github.com/ravikiran1811/foodie-hub/internal/users"
	"github.com/ravikiran1811/foodie-hub/migrations"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.MigrateUp(cfg.PGDSN, migrations.FS); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	aclService := acl.NewService(acl.NewRepository(pool), logger)
	guard := acl.Guard{Auth: aclService, Logger: logger, Recorder: metrics}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authMW := auth.Middleware{Tokens: tokens}
	authService := auth.NewService(auth.NewRepository(pool), tokens, aclService)

	usersService := users.NewService(users.NewRepository(pool), logger)
	restaurantsService := restaurants.NewService(restaurants.NewRepository(pool))
	ordersService := orders.NewService(orders.NewRepository(pool), aclService, logger)
	paymentsService := payments.NewService(payments.NewRepository(pool), logger)
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), redisClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthMiddleware:     authMW,
		AuthHandler:        auth.NewHandler(logger, authService, authMW),
		PermissionsHandler: acl.NewHandler(logger, aclService, guard),
		UsersHandler:       users.NewHandler(logger, usersService, guard),
		RestaurantsHandler: restaurants.NewHandler(logger, restaurantsService, guard),
		OrdersHandler:      orders.NewHandler(logger, ordersService, guard),
		PaymentsHandler:    payments.NewHandler(logger, paymentsService, guard),
		DashboardHandler:   dashboard.NewHandler(logger, dashboardService, guard),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
