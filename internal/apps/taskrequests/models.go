package taskrequests

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRequest describes research work its owner wants help with. It is
// never changed after creation.
type TaskRequest struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	ResearchField           string    `gorm:"size:255;not null;index" json:"researchField"`
	ResearchSubject         string    `gorm:"size:255;not null" json:"researchSubject"`
	ProjectImpactSummary    string    `gorm:"type:text;not null" json:"projectImpactSummary"`
	FieldRequestingHelpFrom string    `gorm:"size:255;not null;index" json:"fieldRequestingHelpFrom"`
	ExpectedTasksAndSkills  string    `gorm:"type:text;not null" json:"expectedTasksAndSkills"`
	Reward                  string    `gorm:"type:text;not null" json:"reward"`
	AdditionalInfo          string    `gorm:"type:text" json:"additionalInfo,omitempty"`
	State                   string    `gorm:"size:100" json:"state"`
	UserID                  uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

func (t *TaskRequest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
