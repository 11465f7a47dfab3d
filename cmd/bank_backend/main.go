package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/SscSPs/bank_ledger_app/internal/adapters/events/sqs"
	"github.com/SscSPs/bank_ledger_app/internal/adapters/ratesource/fastforex"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
	"github.com/SscSPs/bank_ledger_app/internal/handlers"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/database/memory"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/SscSPs/bank_ledger_app/pkg/database"
)

// @title Bank Ledger API
// @version 1.0
// @description Accounts, movements and ledger reports of the bank back-office.

// @host localhost:8080
// @BasePath /api/v1/bank

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("store_driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	integrations := services.Integrations{}
	if cfg.FastForexAPIKey != "" {
		integrations.RateSource = fastforex.NewClient(cfg.FastForexAPIKey, fastforex.WithBaseURL(cfg.FastForexBaseURL))
	}
	if cfg.EventsQueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Error("Failed to load AWS config", slog.String("error", err.Error()))
			os.Exit(1)
		}
		integrations.Publisher = sqs.NewPublisher(awssqs.NewFromConfig(awsCfg), cfg.EventsQueueURL)
		logger.Info("Movement events enabled", slog.String("queue_url", cfg.EventsQueueURL))
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, integrations)

	vault, err := serviceContainer.Account.EnsureVault(ctx)
	if err != nil {
		logger.Error("Failed to ensure vault account", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Vault account ready", slog.String("account_id", vault.AccountID))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer,
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// openStore builds the repositories for the configured driver and returns a cleanup func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using the in-memory store, data is lost on restart")
		store := memory.NewStore()
		seedProducts(store)
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seededProducts mirrors migrations/000002_seed_products.up.sql.
var seededProducts = []domain.Product{
	{
		ProductID:   "00000000-0000-0000-0000-000000000001",
		Name:        "Debit card replacement",
		Description: "Issue a new debit card",
		Type:        domain.ProductTypeService,
		Price:       decimal.NewFromInt(35),
		IsActive:    true,
	},
	{
		ProductID:   "00000000-0000-0000-0000-000000000002",
		Name:        "Checkbook",
		Description: "Book of 25 checks",
		Type:        domain.ProductTypeProduct,
		Price:       decimal.NewFromInt(50),
		IsActive:    true,
	},
}

// seedProducts fills the in-memory catalog, which has no write endpoint.
func seedProducts(store *memory.Store) {
	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"}
	for _, p := range seededProducts {
		p.AuditFields = audit
		store.AddProduct(p)
	}
}
