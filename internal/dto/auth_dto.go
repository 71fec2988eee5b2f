package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PublicUser is the part of a User that any client may see.
type PublicUser struct {
	ID                          uuid.UUID `json:"_id"`
	Email                       string    `json:"email"`
	Name                        string    `json:"name"`
	Field                       string    `json:"field"`
	Specialization              string    `json:"specialization"`
	CurrentAvailability         string    `json:"currentAvailability"`
	SupervisorEmail             string    `json:"supervisorEmail"`
	ResearchExperience          string    `json:"researchExperience"`
	ResearchPapers              string    `json:"researchPapers"`
	University                  string    `json:"university"`
	DegreesHeld                 string    `json:"degreesHeld"`
	ShortBio                    string    `json:"shortBio"`
	LinkedInURL                 string    `json:"linkedInUrl"`
	CreatedAt                   time.Time `json:"createdAt"`
	UpdatedAt                   time.Time `json:"updatedAt"`
}

func NewPublicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:                          u.ID,
		Email:                       u.Email,
		Name:                        u.Name,
		Field:                       u.Field,
		Specialization:              u.Specialization,
		CurrentAvailability:         u.CurrentAvailability,
		SupervisorEmail:             u.SupervisorEmail,
		ResearchExperience:          u.ResearchExperience,
		ResearchPapers:              u.ResearchPapers,
		University:                  u.University,
		DegreesHeld:                 u.DegreesHeld,
		ShortBio:                    u.ShortBio,
		LinkedInURL:                 u.LinkedInURL,
		CreatedAt:                   u.CreatedAt,
		UpdatedAt:                   u.UpdatedAt,
	}
}

// FormError is the body of every 403 caused by bad input. Entire holds
// messages that do not belong to a single field.
type FormError struct {
	Entire []string          `json:"entire"`
	Fields map[string]string `json:"fields"`
}

func NewFormError(fields map[string]string, entire ...string) FormError {
	if fields == nil {
		fields = map[string]string{}
	}
	if entire == nil {
		entire = []string{}
	}
	return FormError{Entire: entire, Fields: fields}
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type OKResponse struct {
	OK int `json:"ok"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Redis     string `json:"redis,omitempty"`
}
