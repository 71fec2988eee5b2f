package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/dto"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/session"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// Register handles POST /signup.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if handled, herr := FormFailure(c, err); handled {
			return herr
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(map[string]string{
				"email": "Account with that email address already exists.",
			}))
		}
		return err
	}

	session.SetCookie(c, h.cfg, resp.Token, resp.ExpiresAt)
	return c.JSON(dto.NewPublicUser(resp.User))
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if handled, herr := FormFailure(c, err); handled {
			return herr
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(nil, "Invalid email or password."))
		}
		return err
	}

	session.SetCookie(c, h.cfg, resp.Token, resp.ExpiresAt)
	return c.JSON(dto.NewPublicUser(resp.User))
}

// Logout handles POST /logout. It always clears the cookie and succeeds; a
// valid cookie also revokes its session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	raw := c.Cookies(h.cfg.SessionCookieName)
	session.ClearCookie(c, h.cfg)

	if raw != "" {
		if userID, sessionID, err := session.Parse(h.cfg.SessionSecret, raw); err == nil {
			if err := h.authService.Logout(c.UserContext(), sessionID); err != nil {
				slog.Error("session revoke failed",
					"user_id", userID.String(),
					"trace_id", c.GetRespHeader(fiber.HeaderXRequestID),
					"error", err.Error(),
				)
			}
		}
	}

	return c.JSON(fiber.Map{})
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	user, err := h.authService.CurrentUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return err
	}

	return c.JSON(dto.NewPublicUser(user))
}
