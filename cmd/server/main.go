package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordsprout/internal/api"
	"wordsprout/internal/categorize"
	"wordsprout/internal/config"
	"wordsprout/internal/domain"
	"wordsprout/internal/handler"
	"wordsprout/internal/middleware"
	"wordsprout/internal/repository/postgres"
	"wordsprout/internal/selector"
	"wordsprout/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting WordSprout")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	childRepo := postgres.NewChildRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	wordRepo := postgres.NewWordRepo(db)
	milestoneRepo := postgres.NewMilestoneRepo(db)

	// Word categorization is optional
	var categorizer service.Categorizer
	if cfg.AutoCategorize {
		categorizer = categorize.NewClient(cfg.ConceptNetURL, cfg.ConceptNetTimeout, logger)
		logger.Info("Automatic categorization enabled", zap.String("url", cfg.ConceptNetURL))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	childService := service.NewChildService(childRepo, milestoneRepo, logger)
	milestoneService := service.NewMilestoneService(milestoneRepo, wordRepo, childRepo, logger)
	wordService := service.NewWordService(wordRepo, childRepo, categoryRepo, milestoneService, categorizer, logger)
	statsService := service.NewStatsService(wordRepo, categoryRepo, milestoneRepo, milestoneService, logger)
	voiceService := service.NewVoiceService(wordService, logger)

	// HTTP API
	apiHandler := api.NewHandler(authService, childService, wordService, milestoneService, statsService, voiceService, logger)
	router := api.NewRouter(apiHandler, middleware.NewRateLimiter(cfg.SignInRatePerMinute), logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Telegram bot is optional
	var bot *tele.Bot
	if cfg.BotEnabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		logger.Info("Telegram bot initialized")

		sel := selector.New(childService, logger)
		sel.Subscribe(func(userID uuid.UUID, child *domain.Child) {
			if child == nil {
				logger.Info("Active child cleared", zap.String("user_id", userID.String()))
				return
			}
			logger.Info("Active child changed",
				zap.String("user_id", userID.String()),
				zap.String("child_id", child.ID.String()),
			)
		})

		h := handler.NewHandler(bot, authService, childService, wordService, milestoneService, statsService, sel, logger)
		h.RegisterHandlers()

		logger.Info("Handlers registered")

		go func() {
			logger.Info("Bot started successfully")
			bot.Start()
		}()
	} else {
		logger.Info("BOT_TOKEN not set, Telegram bot disabled")
	}

	// Start milestone sweep in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runReconcileJob(ctx, milestoneService, cfg.ReconcileInterval, logger)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	// Front-ends stop first so no new reconciliations are queued
	if bot != nil {
		bot.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	cancel()
	milestoneService.Shutdown()

	logger.Info("Stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runReconcileJob periodically recomputes vocabulary milestones for every child
func runReconcileJob(ctx context.Context, milestones *service.MilestoneService, interval time.Duration, logger *zap.Logger) {
	sweep := func() {
		if err := milestones.ReconcileAll(); err != nil {
			for _, e := range multierr.Errors(err) {
				logger.Error("Milestone sweep failure", zap.Error(e))
			}
		}
	}

	// Run once at startup
	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Milestone sweep job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled milestone sweep")
			sweep()
		}
	}
}
