package middleware

import (
	"context"
	"errors"
	"log/slog"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/session"
)

// SessionChecker confirms that a session named by a valid cookie is still live.
type SessionChecker interface {
	CheckSession(ctx context.Context, userID, sessionID uuid.UUID) error
}

// SessionRequired verifies the session cookie and rejects the request with
// a bare 401 when it is missing, invalid, expired or revoked.
func SessionRequired(cfg *config.Config, checker SessionChecker) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.SessionSecret)},
		TokenLookup: "cookie:" + cfg.SessionCookieName,
		ContextKey:  session.ContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(fiber.StatusUnauthorized)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			userID, err := session.GetUserID(c)
			if err != nil {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			sessionID, err := session.GetSessionID(c)
			if err != nil {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			if err := checker.CheckSession(c.UserContext(), userID, sessionID); err != nil {
				if errors.Is(err, services.ErrSessionInactive) {
					return c.SendStatus(fiber.StatusUnauthorized)
				}
				slog.Error("session check failed", "user_id", userID.String(), "error", err)
				return err
			}
			c.Locals("user_id", userID.String())
			return c.Next()
		},
	})
}
