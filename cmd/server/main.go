package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jazzypay/internal/app"
	"jazzypay/internal/config"
	"jazzypay/internal/gateway"
	"jazzypay/internal/handler"
	"jazzypay/internal/logging"
	internalRedis "jazzypay/internal/redis"
	"jazzypay/internal/repository/postgres"
	"jazzypay/internal/service"
	"jazzypay/internal/session"
)

func main() {
	logger := logging.NewSugaredLogger()
	defer logger.Sync()

	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warnw("failed to initialize New Relic", "error", err)
		} else {
			logger.Infow("New Relic enabled", "app", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg, logger)

	// Start server in goroutine.
	go func() {
		logger.Infow("starting server",
			"port", cfg.Server.Port,
			"gateway_mode", cfg.Gateway.Mode,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("server error", "error", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalw("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, logger *zap.SugaredLogger) *http.Server {
	// Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	noticeStore := internalRedis.NewNoticeStore(redisClient)

	// Order Store.
	orderRepo := postgres.NewOrderRepository(db)

	// Collaborators.
	storefront := session.New(cfg.Store.SiteURL)
	jazzypayClient := gateway.NewClient(cfg.Gateway.Active(), cfg.Gateway.Timeout)

	// Services.
	noticeService := service.NewNoticeService(noticeStore, logger)
	checkoutService := service.NewCheckoutService(orderRepo, jazzypayClient, storefront, lockStore, noticeService, logger)

	// Handlers.
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	callbackHandler := handler.NewCallbackHandler(checkoutService, logger)
	orderHandler := handler.NewOrderHandler(orderRepo, noticeService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		CheckoutHandler: checkoutHandler,
		CallbackHandler: callbackHandler,
		OrderHandler:    orderHandler,
		NewRelicApp:     nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
