package collabrequests

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollabRequest is a collaboration opportunity. Its only mutation after
// creation is appending invitees.
type CollabRequest struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Field                string    `gorm:"size:255;not null" json:"field"`
	Subject              string    `gorm:"size:255;not null" json:"subject"`
	ProjectImpactSummary string    `gorm:"type:text;not null" json:"projectImpactSummary"`
	ExpectedTasks        string    `gorm:"type:text;not null" json:"expectedTasks"`
	ExpectedSkills       string    `gorm:"type:text;not null" json:"expectedSkills"`
	ExpectedTime         string    `gorm:"size:255;not null" json:"expectedTime"`
	Offer                string    `gorm:"type:text;not null" json:"offer"`
	AdditionalInfo       string    `gorm:"type:text" json:"additionalInfo,omitempty"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`

	Invites        []CollabInvite `gorm:"foreignKey:CollabRequestID" json:"-"`
	InvitedCollabs []string       `gorm:"-" json:"invitedCollabs"`
}

func (r *CollabRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AfterFind flattens the preloaded invites into the email list clients see.
func (r *CollabRequest) AfterFind(tx *gorm.DB) error {
	r.fillInvitedCollabs()
	return nil
}

func (r *CollabRequest) fillInvitedCollabs() {
	r.InvitedCollabs = make([]string, 0, len(r.Invites))
	for _, inv := range r.Invites {
		r.InvitedCollabs = append(r.InvitedCollabs, inv.Email)
	}
}

// CollabInvite is one invited address. The unique index is what keeps the
// invite list free of duplicates under concurrent invites.
type CollabInvite struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	CollabRequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collab_invites_request_email,priority:1" json:"collabRequestId"`
	Email           string    `gorm:"size:255;not null;uniqueIndex:idx_collab_invites_request_email,priority:2" json:"email"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}
