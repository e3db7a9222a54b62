package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/perna2k6/pernateste/internal/domain/port/persistence"
	"github.com/perna2k6/pernateste/internal/domain/usecase/lifecycle"
	"github.com/perna2k6/pernateste/internal/domain/usecase/webhook"

	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/handler"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/routes"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/database"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/database/migration"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/gateway/suitpay"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/logger"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/notify"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/repository"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/repository/memory"
	timeProvider "github.com/perna2k6/pernateste/internal/infrastructure/adapter/time"
	"github.com/perna2k6/pernateste/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// repositories groups the four persistence ports behind one driver choice
type repositories struct {
	transactions  persistence.TransactionRepository
	subscriptions persistence.SubscriptionRepository
	users         persistence.UserRepository
	events        persistence.WebhookEventRepository
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == "production", cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Storage: postgres for real deployments, memory for local development
	var repos repositories
	var dbManager *database.Manager

	switch cfg.Database.Driver {
	case "memory":
		appLogger.Warn("Using in-memory storage, data is lost on restart", nil)
		store := memory.NewStore(tp)
		repos = repositories{
			transactions:  store.Transactions(),
			subscriptions: store.Subscriptions(),
			users:         store.Users(),
			events:        store.WebhookEvents(),
		}

	default:
		dbConfig := &database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Username:        cfg.Database.Username,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			QueryTimeout:    cfg.Database.QueryTimeout,
			LogLevel:        cfg.Logger.Level,
			RetryAttempts:   cfg.Database.RetryAttempts,
			RetryDelay:      cfg.Database.RetryDelay,
		}

		dbManager = database.NewManager(dbConfig, appLogger, tp)
		if _, err := dbManager.Connect(); err != nil {
			appLogger.Error("Failed to connect to database", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer func() { _ = dbManager.Close() }()

		migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
		if err := migrationMgr.MigrateAll(); err != nil {
			appLogger.Error("Failed to run migrations", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		repos = repositories{
			transactions:  repository.NewTransactionRepository(dbManager.DB(), appLogger, tp),
			subscriptions: repository.NewSubscriptionRepository(dbManager.DB(), appLogger, tp),
			users:         repository.NewUserRepository(dbManager.DB(), appLogger),
			events:        repository.NewWebhookEventRepository(dbManager.DB(), appLogger),
		}
	}

	// Payment gateway client
	gatewayClient := suitpay.NewClient(suitpay.Options{
		BaseURL:     cfg.Gateway.BaseURL,
		PublicKey:   cfg.Gateway.PublicKey,
		SecretKey:   cfg.Gateway.SecretKey,
		CallbackURL: cfg.Gateway.CallbackURL,
		CallTimeout: cfg.Gateway.CallTimeout,
		EnrichDelay: cfg.Gateway.EnrichDelay,
	}, tp, appLogger)

	// Use cases
	paymentNotifier := notify.NewLogNotifier(appLogger)
	engine := lifecycle.NewEngine(
		repos.transactions,
		repos.subscriptions,
		gatewayClient,
		paymentNotifier,
		tp,
		appLogger,
	)

	ingestor := webhook.NewIngestor(
		repos.events,
		engine,
		map[string]webhook.NoticeParser{
			suitpay.ProviderName: suitpay.ParseWebhook,
		},
		tp,
		appLogger,
	)

	// Replay notifications that were recorded but never processed, after a
	// grace period so in-flight deliveries from before the restart settle.
	replayCtx, cancelReplay := context.WithCancel(context.Background())
	defer cancelReplay()
	go ingestor.ReplayAfter(replayCtx, cfg.Webhook.ReplayGrace)

	// API handlers
	transactionHandler := handler.NewTransactionHandler(engine, repos.transactions, appLogger)
	webhookHandler := handler.NewWebhookHandler(ingestor, appLogger)
	subscriptionHandler := handler.NewSubscriptionHandler(repos.subscriptions, appLogger)
	userHandler := handler.NewUserHandler(repos.users, tp, appLogger)
	healthHandler := handler.NewHealthHandler(cfg.Environment)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, transactionHandler, webhookHandler, subscriptionHandler, userHandler, healthHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server", nil)
	cancelReplay()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited", nil)
}
