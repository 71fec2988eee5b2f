package collabrequests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/email"
	"github.com/gradcollab/gradcollab-backend/internal/mailer"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/validation"
	"gorm.io/gorm"
)

var createMessages = map[string]string{
	"field":                "Field cannot be blank",
	"subject":              "Subject cannot be blank",
	"projectImpactSummary": "Project impact summary cannot be blank",
	"expectedTasks":        "Expected tasks cannot be blank",
	"expectedSkills":       "Expected skills cannot be blank",
	"expectedTime":         "Expected time cannot be blank",
	"offer":                "Offer cannot be blank",
}

// insertInvite appends an invitee in one statement. It inserts nothing when
// the request does not exist, belongs to someone else, or already lists
// the address.
const insertInvite = `INSERT INTO collab_invites (collab_request_id, email)
SELECT id, ? FROM collab_requests WHERE id = ? AND user_id = ?
ON CONFLICT (collab_request_id, email) DO NOTHING`

type CollabRequestService struct {
	db     *gorm.DB
	mailer mailer.Mailer
	cfg    *config.Config
}

func NewCollabRequestService(db *gorm.DB, m mailer.Mailer, cfg *config.Config) *CollabRequestService {
	return &CollabRequestService{db: db, mailer: m, cfg: cfg}
}

func (s *CollabRequestService) Create(ctx context.Context, userID uuid.UUID, req *CreateCollabRequestRequest) (*CollabRequest, error) {
	if fields, err := validation.Struct(req, createMessages); err != nil {
		return nil, err
	} else if fields != nil {
		return nil, services.NewValidationError(fields)
	}

	collabRequest := &CollabRequest{
		Field:                req.Field,
		Subject:              req.Subject,
		ProjectImpactSummary: req.ProjectImpactSummary,
		ExpectedTasks:        req.ExpectedTasks,
		ExpectedSkills:       req.ExpectedSkills,
		ExpectedTime:         req.ExpectedTime,
		Offer:                req.Offer,
		AdditionalInfo:       req.AdditionalInfo,
		UserID:               userID,
	}

	if err := s.db.WithContext(ctx).Omit("Invites").Create(collabRequest).Error; err != nil {
		return nil, fmt.Errorf("failed to create collab request: %w", err)
	}
	collabRequest.fillInvitedCollabs()

	slog.Info("collab request created", "user_id", userID.String(), "collab_request_id", collabRequest.ID.String())
	return collabRequest, nil
}

func (s *CollabRequestService) Get(ctx context.Context, id uuid.UUID) (*CollabRequest, error) {
	var collabRequest CollabRequest
	err := s.withInvites(ctx).First(&collabRequest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load collab request: %w", err)
	}
	return &collabRequest, nil
}

// ListForUser returns every collab request owned by userID.
func (s *CollabRequestService) ListForUser(ctx context.Context, userID uuid.UUID) ([]CollabRequest, error) {
	collabRequests := []CollabRequest{}
	err := s.withInvites(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&collabRequests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collab requests: %w", err)
	}
	return collabRequests, nil
}

// Invite records invitedEmail on the caller's collab request and mails the
// invitation. The invite stays recorded when the mail cannot be sent.
func (s *CollabRequestService) Invite(ctx context.Context, userID, id uuid.UUID, invitedEmail string) error {
	invitedEmail = validation.NormalizeEmail(invitedEmail)
	if !validation.IsEmail(invitedEmail) {
		return services.NewValidationError(map[string]string{"invitedCollabEmail": "Email is not valid"})
	}

	result := s.db.WithContext(ctx).Exec(insertInvite, invitedEmail, id, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to record invite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return services.ErrInviteConflict
	}

	slog.Info("collab invite recorded", "user_id", userID.String(), "collab_request_id", id.String())

	collabRequest, err := s.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload collab request %s: %w", id, err)
	}

	rendered, err := email.RenderCollabInvite(s.cfg.WebClientOrigin, email.CollabInvite{
		ID:                   collabRequest.ID.String(),
		Field:                collabRequest.Field,
		Subject:              collabRequest.Subject,
		ProjectImpactSummary: collabRequest.ProjectImpactSummary,
		ExpectedTasks:        collabRequest.ExpectedTasks,
		ExpectedTime:         collabRequest.ExpectedTime,
		Offer:                collabRequest.Offer,
		AdditionalInfo:       collabRequest.AdditionalInfo,
	})
	if err != nil {
		return fmt.Errorf("failed to render invite email: %w", err)
	}

	msg := mailer.Message{
		To:      invitedEmail,
		From:    s.cfg.MailFrom,
		Subject: email.InviteSubject,
		Text:    rendered.Text,
		HTML:    rendered.HTML,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Error("invite email dispatch failed",
			"collab_request_id", id.String(),
			"error", err.Error(),
		)
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	return nil
}

func (s *CollabRequestService) withInvites(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Invites", func(db *gorm.DB) *gorm.DB {
		return db.Order("collab_invites.id ASC")
	})
}
