package taskrequests

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TaskRequestsPlugin struct{}

func New() *TaskRequestsPlugin {
	return &TaskRequestsPlugin{}
}

func (p *TaskRequestsPlugin) ID() string { return "task-requests" }

func (p *TaskRequestsPlugin) Models() []interface{} {
	return []interface{}{&TaskRequest{}}
}

func (p *TaskRequestsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, requireSession fiber.Handler) {
	svc := NewTaskRequestService(db)
	h := NewTaskRequestHandler(svc)

	// Public browsing
	router.Get("/task-requests", h.List)
	router.Get("/task-requests/:id", h.GetByID)

	// Protected
	router.Post("/task-requests", requireSession, h.Create)
}
