package collabrequests

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/dto"
	"github.com/gradcollab/gradcollab-backend/internal/handlers"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/session"
)

type CollabRequestHandler struct {
	service *CollabRequestService
}

func NewCollabRequestHandler(service *CollabRequestService) *CollabRequestHandler {
	return &CollabRequestHandler{service: service}
}

// --- Request/response DTOs ---

type CreateCollabRequestRequest struct {
	Field                string `json:"field" validate:"required"`
	Subject              string `json:"subject" validate:"required"`
	ProjectImpactSummary string `json:"projectImpactSummary" validate:"required"`
	ExpectedTasks        string `json:"expectedTasks" validate:"required"`
	ExpectedSkills       string `json:"expectedSkills" validate:"required"`
	ExpectedTime         string `json:"expectedTime" validate:"required"`
	Offer                string `json:"offer" validate:"required"`
	AdditionalInfo       string `json:"additionalInfo"`
}

type InviteRequest struct {
	InvitedCollabEmail string `json:"invitedCollabEmail"`
}

// InviteFailure is the body for an invite that matched nothing. Which of
// its preconditions failed is not knowable, so the body says nothing.
type InviteFailure struct {
	Err int `json:"err"`
}

// --- Handlers ---

// Create handles POST /collab-requests.
func (h *CollabRequestHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req CreateCollabRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(nil, "Invalid request body"))
	}

	collabRequest, err := h.service.Create(c.UserContext(), userID, &req)
	if err != nil {
		if handled, herr := handlers.FormFailure(c, err); handled {
			return herr
		}
		return err
	}

	return c.JSON(fiber.Map{"collabRequestId": collabRequest.ID})
}

// GetByID handles GET /collab-requests/:id.
func (h *CollabRequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}

	collabRequest, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(collabRequest)
}

// List handles GET /collab-requests for the signed-in owner.
func (h *CollabRequestHandler) List(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	collabRequests, err := h.service.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(collabRequests)
}

// Invite handles POST /collab-requests/:id/invites.
func (h *CollabRequestHandler) Invite(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(InviteFailure{Err: 1})
	}

	var req InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(nil, "Invalid request body"))
	}

	if err := h.service.Invite(c.UserContext(), userID, id, req.InvitedCollabEmail); err != nil {
		if handled, herr := handlers.FormFailure(c, err); handled {
			return herr
		}
		if errors.Is(err, services.ErrInviteConflict) {
			return c.Status(fiber.StatusInternalServerError).JSON(InviteFailure{Err: 1})
		}
		return err
	}

	return c.JSON(dto.OKResponse{OK: 1})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Collab request not found"})
}
