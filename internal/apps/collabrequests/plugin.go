package collabrequests

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/mailer"
	"gorm.io/gorm"
)

type CollabRequestsPlugin struct {
	mailer mailer.Mailer
	cfg    *config.Config
}

func New(m mailer.Mailer, cfg *config.Config) *CollabRequestsPlugin {
	return &CollabRequestsPlugin{mailer: m, cfg: cfg}
}

func (p *CollabRequestsPlugin) ID() string { return "collab-requests" }

func (p *CollabRequestsPlugin) Models() []interface{} {
	return []interface{}{&CollabRequest{}, &CollabInvite{}}
}

func (p *CollabRequestsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, requireSession fiber.Handler) {
	svc := NewCollabRequestService(db, p.mailer, p.cfg)
	h := NewCollabRequestHandler(svc)

	router.Get("/collab-requests", requireSession, h.List)
	router.Get("/collab-requests/:id", h.GetByID)
	router.Post("/collab-requests", requireSession, h.Create)
	router.Post("/collab-requests/:id/invites", requireSession, h.Invite)
}
