package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account plus its research profile. Profile fields start blank
// at registration and are only changed by the owner.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Email    string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Name                        string `gorm:"not null;default:''" json:"name"`
	Field                       string `gorm:"not null;default:''" json:"field"`
	Specialization              string `gorm:"not null;default:''" json:"specialization"`
	CurrentAvailability         string `gorm:"not null;default:''" json:"currentAvailability"`
	SupervisorEmail             string `gorm:"not null;default:''" json:"supervisorEmail"`
	ResearchExperience          string `gorm:"type:text;not null;default:''" json:"researchExperience"`
	ResearchPapers              string `gorm:"type:text;not null;default:''" json:"researchPapers"`
	University                  string `gorm:"not null;default:''" json:"university"`
	DegreesHeld                 string `gorm:"not null;default:''" json:"degreesHeld"`
	ShortBio                    string `gorm:"type:text;not null;default:''" json:"shortBio"`
	LinkedInURL                 string `gorm:"column:linked_in_url;not null;default:''" json:"linkedInUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ProfileColumns maps the JSON name of every editable profile field to its
// column. Registration leaves all of them blank.
var ProfileColumns = map[string]string{
	"name":                        "name",
	"field":                       "field",
	"specialization":              "specialization",
	"currentAvailability":         "current_availability",
	"supervisorEmail":             "supervisor_email",
	"researchExperience":          "research_experience",
	"researchPapers":              "research_papers",
	"university":                  "university",
	"degreesHeld":                 "degrees_held",
	"shortBio":                    "short_bio",
	"linkedInUrl":                 "linked_in_url",
}
