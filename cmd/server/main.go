package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"worldmarket/internal/app"
	"worldmarket/internal/config"
	"worldmarket/internal/handler"
	internalRedis "worldmarket/internal/redis"
	"worldmarket/internal/repository/postgres"
	"worldmarket/internal/service"
	"worldmarket/internal/worldid"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			sugar.Errorw("failed to initialize New Relic", "error", err)
		} else {
			sugar.Infow("New Relic enabled", "app", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()
	sugar.Info("connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		sugar.Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()
	sugar.Info("connected to Redis")

	// Wire dependencies.
	server, err := wireServer(db, redisClient, nrApp, cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to wire server", "error", err)
	}

	// Start server in goroutine.
	go func() {
		sugar.Infow("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server error", "error", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Fatalw("server forced to shutdown", "error", err)
	}

	sugar.Info("server exited")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, logger *zap.SugaredLogger) (*http.Server, error) {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	configRepo := postgres.NewConfigRepository(db)
	convRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)

	// Developer Portal client, used for both proof verification and
	// transaction lookups.
	portal, err := worldid.NewClient(worldid.Config{
		BaseURL: cfg.WorldID.BaseURL,
		AppID:   cfg.WorldID.AppID,
		APIKey:  cfg.WorldID.APIKey,
	}, nil)
	if err != nil {
		return nil, err
	}

	// Initialize services.
	notificationService := service.NewNotificationService(logger)
	authService := service.NewAuthService(userRepo, portal, cfg.WorldID.Action, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, logger)
	configService := service.NewConfigService(configRepo, cacheStore, logger)
	productService := service.NewProductService(productRepo, userRepo, cacheStore, logger)
	paymentService := service.NewPaymentService(paymentRepo, productRepo, configService, lockStore, portal, notificationService, logger)
	conversationService := service.NewConversationService(convRepo, messageRepo, productRepo, notificationService, logger)
	reportService := service.NewReportService(reportRepo, productRepo, notificationService, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo, logger)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	productHandler := handler.NewProductHandler(productService)
	conversationHandler := handler.NewConversationHandler(conversationService)
	reportHandler := handler.NewReportHandler(reportService)
	configHandler := handler.NewConfigHandler(configService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthService:         authService,
		AuthHandler:         authHandler,
		PaymentHandler:      paymentHandler,
		ProductHandler:      productHandler,
		ConversationHandler: conversationHandler,
		ReportHandler:       reportHandler,
		FavoriteHandler:     favoriteHandler,
		ConfigHandler:       configHandler,
		RedisClient:         redisClient,
		NewRelicApp:         nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
