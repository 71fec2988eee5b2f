package taskrequests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/models"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"github.com/gradcollab/gradcollab-backend/internal/validation"
	"gorm.io/gorm"
)

var createMessages = map[string]string{
	"researchField":           "Research field cannot be blank",
	"researchSubject":         "Research subject cannot be blank",
	"projectImpactSummary":    "Project impact summary cannot be blank",
	"fieldRequestingHelpFrom": "Field requesting help from cannot be blank",
	"expectedTasksAndSkills":  "Expected tasks and skills cannot be blank",
	"reward":                  "Reward cannot be blank",
}

// Filter narrows List. Empty fields are left out of the query entirely.
type Filter struct {
	ForUserID               *uuid.UUID
	ResearchField           string
	FieldRequestingHelpFrom string
}

type TaskRequestService struct {
	db *gorm.DB
}

func NewTaskRequestService(db *gorm.DB) *TaskRequestService {
	return &TaskRequestService{db: db}
}

func (s *TaskRequestService) Create(ctx context.Context, userID uuid.UUID, req *CreateTaskRequestRequest) (*TaskRequest, error) {
	if fields, err := validation.Struct(req, createMessages); err != nil {
		return nil, err
	} else if fields != nil {
		return nil, services.NewValidationError(fields)
	}

	taskRequest := &TaskRequest{
		ResearchField:           req.ResearchField,
		ResearchSubject:         req.ResearchSubject,
		ProjectImpactSummary:    req.ProjectImpactSummary,
		FieldRequestingHelpFrom: req.FieldRequestingHelpFrom,
		ExpectedTasksAndSkills:  req.ExpectedTasksAndSkills,
		Reward:                  req.Reward,
		AdditionalInfo:          req.AdditionalInfo,
		State:                   req.State,
		UserID:                  userID,
	}

	if err := s.db.WithContext(ctx).Create(taskRequest).Error; err != nil {
		return nil, fmt.Errorf("failed to create task request: %w", err)
	}

	slog.Info("task request created", "user_id", userID.String(), "task_request_id", taskRequest.ID.String())
	return taskRequest, nil
}

func (s *TaskRequestService) Get(ctx context.Context, id uuid.UUID) (*TaskRequest, error) {
	var taskRequest TaskRequest
	if err := s.db.WithContext(ctx).First(&taskRequest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load task request: %w", err)
	}
	return &taskRequest, nil
}

// GetWithOwner loads a task request and then its owner. A missing owner is
// an error, not an empty result.
func (s *TaskRequestService) GetWithOwner(ctx context.Context, id uuid.UUID) (*TaskRequest, *models.User, error) {
	taskRequest, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var owner models.User
	if err := s.db.WithContext(ctx).First(&owner, "id = ?", taskRequest.UserID).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load owner %s of task request %s: %w", taskRequest.UserID, id, err)
	}
	return taskRequest, &owner, nil
}

// List returns every task request matching all the set fields of f.
func (s *TaskRequestService) List(ctx context.Context, f Filter) ([]TaskRequest, error) {
	query := s.db.WithContext(ctx).Model(&TaskRequest{})
	if f.ForUserID != nil {
		query = query.Where("user_id = ?", *f.ForUserID)
	}
	if f.ResearchField != "" {
		query = query.Where("research_field = ?", f.ResearchField)
	}
	if f.FieldRequestingHelpFrom != "" {
		query = query.Where("field_requesting_help_from = ?", f.FieldRequestingHelpFrom)
	}

	taskRequests := []TaskRequest{}
	if err := query.Order("created_at ASC").Find(&taskRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to list task requests: %w", err)
	}
	return taskRequests, nil
}
