package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/relief-service/internal/api/http"
	"github.com/spec-kit/relief-service/internal/api/http/handlers"
	"github.com/spec-kit/relief-service/internal/auth"
	"github.com/spec-kit/relief-service/internal/config"
	"github.com/spec-kit/relief-service/internal/events"
	"github.com/spec-kit/relief-service/internal/identity"
	"github.com/spec-kit/relief-service/internal/observability"
	"github.com/spec-kit/relief-service/internal/persistence"
	"github.com/spec-kit/relief-service/internal/repository"
	"github.com/spec-kit/relief-service/internal/service"
	"github.com/spec-kit/relief-service/internal/store"
	"github.com/spec-kit/relief-service/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	resourceStore := store.New(redis, dispatcher, logger)
	if err := resourceStore.Start(ctx); err != nil {
		logger.Fatal("failed to load resource store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	profileStore := identity.NewPostgresProfileStore(pool)
	provider := identity.NewPostgresProvider(accountRepo, cfg.Auth.BcryptCost, logger)

	sessionHolder := auth.NewSessionHolder(redis, dispatcher, logger)
	if err := sessionHolder.Bootstrap(ctx); err != nil {
		logger.Warn("session bootstrap", zap.Error(err))
	}
	authActions := auth.NewActions(auth.ActionDependencies{
		Provider: provider,
		Profiles: profileStore,
		Holder:   sessionHolder,
	}, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, profileStore)

	resourceService := service.NewResourceService(resourceStore)
	directoryService := service.NewDirectoryService(redis, dispatcher, logger)
	chatService := service.NewChatService(redis, directoryService, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(map[string]handlers.Pinger{"redis": redis, "postgres": pg}),
		Auth:           handlers.NewAuthHandler(authActions, tokenManager, directoryService),
		Resources:      handlers.NewResourcesHandler(resourceService),
		Chat:           handlers.NewChatHandler(chatService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
