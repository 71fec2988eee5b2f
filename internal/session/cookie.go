package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gradcollab/gradcollab-backend/internal/config"
)

// SetCookie stores a signed session token. Production cookies are Secure and
// SameSite=None because the web client is served from another origin.
func SetCookie(c *fiber.Ctx, cfg *config.Config, token string, expiresAt time.Time) {
	c.Cookie(newCookie(cfg, token, expiresAt))
}

func ClearCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(newCookie(cfg, "", time.Unix(0, 0)))
}

func newCookie(cfg *config.Config, value string, expiresAt time.Time) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = fiber.CookieSameSiteNoneMode
	}
	return cookie
}
