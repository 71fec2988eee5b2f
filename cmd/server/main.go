package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gradcollab/gradcollab-backend/internal/apps"
	"github.com/gradcollab/gradcollab-backend/internal/apps/collabrequests"
	"github.com/gradcollab/gradcollab-backend/internal/apps/taskrequests"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/database"
	"github.com/gradcollab/gradcollab-backend/internal/handlers"
	"github.com/gradcollab/gradcollab-backend/internal/logging"
	"github.com/gradcollab/gradcollab-backend/internal/mailer"
	"github.com/gradcollab/gradcollab-backend/internal/middleware"
	"github.com/gradcollab/gradcollab-backend/internal/routes"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err.Error())
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.MigrateShared(db); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(logging.StdoutHandler(), pgLogHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Mail
	var mail mailer.Mailer
	if cfg.SendGridAPIKey != "" {
		mail = mailer.NewSendGrid(cfg.SendGridAPIKey)
	} else {
		slog.Warn("SENDGRID_API_KEY not set, invite emails will only be logged")
		mail = mailer.NewLog()
	}

	plugins := []apps.Plugin{
		taskrequests.New(),
		collabrequests.New(mail, cfg),
	}

	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(db, models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Rate-limit store
	var (
		limiterStorage fiber.Storage
		redisStorage   *storage.RedisStorage
		healthRedis    handlers.Pinger
	)
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStorage, err = storage.NewRedis(ctx, cfg)
		cancel()
		if err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		limiterStorage = redisStorage
		healthRedis = redisStorage
		slog.Info("redis connected", "addr", cfg.RedisAddr)
	} else {
		limiterStorage = storage.NewMemory()
	}

	// Services and handlers
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler(db, healthRedis)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, db,
		authHandler,
		userHandler,
		healthHandler,
		middleware.SessionRequired(cfg, authService),
		limiterStorage,
		plugins,
	)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := ":" + cfg.Port
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		var err error
		if cfg.IsProduction() {
			err = app.ListenTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = app.Listen(addr)
		}
		if err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisStorage != nil {
		if err := redisStorage.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
