package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gradcollab/gradcollab-backend/internal/config"
)

// CORS admits the web client only; credentials are allowed so the session
// cookie travels with cross-origin requests.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.WebClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PATCH, OPTIONS",
		AllowCredentials: true,
	})
}
