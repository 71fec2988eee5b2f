package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gradcollab/gradcollab-backend/internal/apps"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/handlers"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	requireSession fiber.Handler,
	limiterStorage fiber.Storage,
	plugins []apps.Plugin,
) {
	// General rate limiter: RATE_LIMIT_MAX req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return "api:" + c.IP() },
		Storage:           limiterStorage,
	}))

	// Credential endpoints: 10 req/min per IP (stricter)
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return "auth:" + c.IP() },
		Storage:           limiterStorage,
	})

	app.Get("/health", healthHandler.Check)

	// Auth
	app.Post("/signup", authLimiter, authHandler.Register)
	app.Post("/login", authLimiter, authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/me", requireSession, authHandler.Me)

	// Profile
	app.Patch("/users/:id", requireSession, userHandler.UpdateProfile)

	// Postings
	for _, p := range plugins {
		p.RegisterRoutes(app, db, requireSession)
	}
}
