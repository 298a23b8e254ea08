package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/auth-gateway/internal/api/http"
	"github.com/spec-kit/auth-gateway/internal/api/http/handlers"
	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/observability"
	"github.com/spec-kit/auth-gateway/internal/service"
	"github.com/spec-kit/auth-gateway/internal/supabase"
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

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	provider := supabase.NewService(cfg.Supabase, logger)
	authService := service.NewAuthService(*cfg, provider, logger, metrics)
	guard := auth.NewMiddleware(authService)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, cfg, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		App:   handlers.NewAppHandler(),
		Auth:  handlers.NewAuthHandler(authService),
		Guard: guard,
	})
	app.Get("/metrics", adaptor.HTTPHandler(observability.Handler(registry)))

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
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
