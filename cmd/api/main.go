package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/time-service/internal/api/http"
	"github.com/spec-kit/time-service/internal/api/http/handlers"
	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/config"
	"github.com/spec-kit/time-service/internal/observability"
	"github.com/spec-kit/time-service/internal/persistence"
	"github.com/spec-kit/time-service/internal/repository"
	"github.com/spec-kit/time-service/internal/service"
	"github.com/spec-kit/time-service/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var (
		flashes     session.FlashStore = session.NewMemoryFlashStore(cfg.Redis.FlashTTL())
		redisPinger handlers.Pinger
	)
	if redis := persistence.NewRedis(ctx, cfg.Redis, logger); redis != nil {
		defer redis.Close()
		flashes = session.NewRedisFlashStore(redis.Client, cfg.Redis.FlashTTL())
		redisPinger = redis
	}

	store := repository.NewStore(pg.PoolHandle())
	entryService := service.NewEntryService(service.EntryDependencies{Repos: store, Logger: logger})
	departmentService := service.NewDepartmentService(service.DepartmentDependencies{Store: store, Logger: logger})
	overviewService := service.NewOverviewService(store.Entries())

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisPinger, metrics),
		Entries:    handlers.NewEntriesHandler(entryService),
		Overview:   handlers.NewOverviewHandler(overviewService, cfg.App.Location()),
		Admin:      handlers.NewAdminHandler(departmentService, flashes, logger),
		Identity:   auth.NewIdentityMiddleware(cfg.Auth, logger),
		AdminUsers: cfg.Auth.AdminUsers,
	})

	if len(cfg.Auth.AdminUsers) == 0 {
		logger.Warn("AUTH_ADMIN_USERS is empty; department administration is open to every user")
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
