package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/SscSPs/tax_engagement_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/tax_engagement_app/internal/adapters/storage"
	"github.com/SscSPs/tax_engagement_app/internal/core/services"
	"github.com/SscSPs/tax_engagement_app/internal/handlers"
	"github.com/SscSPs/tax_engagement_app/internal/middleware"
	"github.com/SscSPs/tax_engagement_app/internal/platform/config"
	"github.com/SscSPs/tax_engagement_app/internal/utils"
	"github.com/SscSPs/tax_engagement_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Tax Engagement API
// @version 1.0
// @description Expert portal and admin console for cross-border tax engagements.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool, logger)

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient, logger)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, "", logger)
	defer posthogClient.Close()

	documentStore := storage.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket, &http.Client{Timeout: 10 * time.Second})
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, documentStore)

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(rateLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies every pending migration under ./migrations through a
// short-lived database/sql connection on the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
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
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
