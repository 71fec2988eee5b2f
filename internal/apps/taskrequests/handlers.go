package taskrequests

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/dto"
	"github.com/gradcollab/gradcollab-backend/internal/handlers"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/session"
)

type TaskRequestHandler struct {
	service *TaskRequestService
}

func NewTaskRequestHandler(service *TaskRequestService) *TaskRequestHandler {
	return &TaskRequestHandler{service: service}
}

// --- Request/response DTOs ---

type CreateTaskRequestRequest struct {
	ResearchField           string `json:"researchField" validate:"required"`
	ResearchSubject         string `json:"researchSubject" validate:"required"`
	ProjectImpactSummary    string `json:"projectImpactSummary" validate:"required"`
	FieldRequestingHelpFrom string `json:"fieldRequestingHelpFrom" validate:"required"`
	ExpectedTasksAndSkills  string `json:"expectedTasksAndSkills" validate:"required"`
	Reward                  string `json:"reward" validate:"required"`
	AdditionalInfo          string `json:"additionalInfo"`
	State                   string `json:"state"`
}

type GetQuery struct {
	WithUser bool `query:"withUser"`
}

type ListQuery struct {
	ForUserID               string `query:"forUserId"`
	ResearchField           string `query:"researchField"`
	FieldRequestingHelpFrom string `query:"fieldRequestingHelpFrom"`
}

type TaskRequestWithUser struct {
	User        dto.PublicUser `json:"user"`
	TaskRequest *TaskRequest   `json:"taskRequest"`
}

// --- Handlers ---

// Create handles POST /task-requests.
func (h *TaskRequestHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req CreateTaskRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(nil, "Invalid request body"))
	}

	taskRequest, err := h.service.Create(c.UserContext(), userID, &req)
	if err != nil {
		if handled, herr := handlers.FormFailure(c, err); handled {
			return herr
		}
		return err
	}

	return c.JSON(fiber.Map{"taskRequestId": taskRequest.ID})
}

// GetByID handles GET /task-requests/:id, optionally with ?withUser=1.
func (h *TaskRequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}

	var q GetQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(map[string]string{"withUser": "Invalid value"}))
	}

	if !q.WithUser {
		taskRequest, err := h.service.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return notFound(c)
			}
			return err
		}
		return c.JSON(taskRequest)
	}

	taskRequest, owner, err := h.service.GetWithOwner(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c)
		}
		return err
	}
	return c.JSON(TaskRequestWithUser{User: dto.NewPublicUser(owner), TaskRequest: taskRequest})
}

// List handles GET /task-requests.
func (h *TaskRequestHandler) List(c *fiber.Ctx) error {
	var q ListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(nil, "Invalid query"))
	}

	filter := Filter{
		ResearchField:           q.ResearchField,
		FieldRequestingHelpFrom: q.FieldRequestingHelpFrom,
	}
	if q.ForUserID != "" {
		forUserID, err := uuid.Parse(q.ForUserID)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(map[string]string{"forUserId": "Invalid user id"}))
		}
		filter.ForUserID = &forUserID
	}

	taskRequests, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(taskRequests)
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Task request not found"})
}
