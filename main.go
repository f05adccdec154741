package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"messagely/internal/auth"
	"messagely/internal/config"
	"messagely/internal/credentials"
	"messagely/internal/db"
	"messagely/internal/events"
	"messagely/internal/handlers"
	"messagely/internal/logging"
	"messagely/internal/middleware"
	"messagely/internal/observability"
	"messagely/internal/rabbitmq"
	"messagely/internal/repositories"
	"messagely/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(ctx, cfg.AMQPURL, cfg.AMQPExchange, logger)
	defer publisher.Close()
	logger.Info(ctx, "event publisher ready", "mode", rabbitmq.PublisherMode(publisher), "reason", rabbitmq.PublisherNoopReason(publisher))

	emitter := events.NewEmitter(publisher, cfg.ServiceName, cfg.Environment, logger)

	userRepo := repositories.NewUserRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	hasher := credentials.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)

	userService := services.NewUserService(userRepo, messageRepo, hasher, emitter, logger)
	messageService := services.NewMessageService(messageRepo, emitter, logger)

	router := gin.New()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	if cfg.MetricsEnabled {
		router.Use(observability.HTTPMetricsMiddleware())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	authMiddleware := middleware.AuthMiddleware(tokens)

	handlers.RegisterRoutes(router, authMiddleware, handlers.Handlers{
		Auth:     handlers.NewAuthHandler(userService, tokens),
		Users:    handlers.NewUserHandler(userService),
		Messages: handlers.NewMessageHandler(messageService),
		Health:   handlers.NewHealthHandler(database),
	})
	handlers.RegisterDebugRoutes(router.Group("", authMiddleware), emitter, cfg.DebugRoutes)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "http shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "tracing shutdown failed", "error", err)
	}
}
