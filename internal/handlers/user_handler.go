package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/dto"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/session"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfile handles PATCH /users/:id.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	sessionUserID, err := session.GetUserID(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.SendStatus(fiber.StatusForbidden)
	}

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return invalidBody(c)
	}

	if err := h.userService.UpdateProfile(c.UserContext(), sessionUserID, targetID, fields); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		if handled, herr := FormFailure(c, err); handled {
			return herr
		}
		return err
	}

	return c.JSON(dto.OKResponse{OK: 1})
}
