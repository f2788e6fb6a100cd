package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/nsight-itsm/assistant/internal/api/http"
	"github.com/nsight-itsm/assistant/internal/api/http/handlers"
	"github.com/nsight-itsm/assistant/internal/auth"
	"github.com/nsight-itsm/assistant/internal/config"
	"github.com/nsight-itsm/assistant/internal/events"
	"github.com/nsight-itsm/assistant/internal/observability"
	"github.com/nsight-itsm/assistant/internal/persistence"
	"github.com/nsight-itsm/assistant/internal/remote"
	"github.com/nsight-itsm/assistant/internal/service"
	"github.com/nsight-itsm/assistant/internal/session"
	"github.com/nsight-itsm/assistant/internal/worker"
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

	metrics := observability.NewMetrics()

	var redis *persistence.Redis
	var sessions session.Store
	if cfg.Redis.Addr != "" {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		sessions = session.NewRedisStore(redis.Client, cfg.Session.TTL())
	} else {
		logger.Info("redis disabled, using in-memory session store")
		sessions = session.NewMemoryStore(cfg.Session.TTL())
	}

	invoker, err := remote.NewLambdaInvoker(ctx, cfg.Remote, logger, metrics)
	if err != nil {
		logger.Fatal("failed to init remote invoker", zap.Error(err))
	}
	client := remote.NewClient(invoker, cfg.Remote)

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(dispatcher, logger)

	authenticator, err := auth.NewAuthenticator(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init authenticator", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	ticketService := service.NewTicketService(service.Dependencies{
		Client:     client,
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Auth:           handlers.NewAuthHandler(authenticator, tokens),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Admin:          handlers.NewAdminHandler(ticketService),
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
