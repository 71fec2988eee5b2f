package taskrequests

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/database/dbtest"
	"github.com/gradcollab/gradcollab-backend/internal/models"
	"github.com/gradcollab/gradcollab-backend/internal/services"
)

func validRequest(field, helpFrom string) *CreateTaskRequestRequest {
	return &CreateTaskRequestRequest{
		ResearchField:           field,
		ResearchSubject:         "Protein folding",
		ProjectImpactSummary:    "Faster drug discovery",
		FieldRequestingHelpFrom: helpFrom,
		ExpectedTasksAndSkills:  "Python, statistics",
		Reward:                  "Co-authorship",
	}
}

func newService(t *testing.T) (*TaskRequestService, *models.User) {
	t.Helper()
	db := dbtest.New(t, &TaskRequest{})
	owner := &models.User{Email: "owner@example.com", Password: "x", Name: "Owner"}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return NewTaskRequestService(db), owner
}

func TestCreateAndGet(t *testing.T) {
	svc, owner := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner.ID, validRequest("Biology", "Chemistry"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != owner.ID || got.ResearchField != "Biology" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestCreateRequiresFields(t *testing.T) {
	svc, owner := newService(t)

	_, err := svc.Create(context.Background(), owner.ID, &CreateTaskRequestRequest{ResearchField: "Biology"})
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"researchSubject", "projectImpactSummary", "fieldRequestingHelpFrom", "expectedTasksAndSkills", "reward"} {
		if verr.Fields[field] == "" {
			t.Errorf("expected message for %s, got %v", field, verr.Fields)
		}
	}
	if _, ok := verr.Fields["researchField"]; ok {
		t.Errorf("researchField was set and should not be reported")
	}
}

func TestGetUnknown(t *testing.T) {
	svc, _ := newService(t)

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetWithOwner(t *testing.T) {
	svc, owner := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner.ID, validRequest("Biology", "Chemistry"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	taskRequest, user, err := svc.GetWithOwner(ctx, created.ID)
	if err != nil {
		t.Fatalf("get with owner: %v", err)
	}
	if taskRequest.ID != created.ID || user.ID != owner.ID || user.Name != "Owner" {
		t.Fatalf("unexpected result: %+v %+v", taskRequest, user)
	}
}

func TestGetWithOwnerFailsWhenOwnerMissing(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), validRequest("Biology", "Chemistry"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, _, err = svc.GetWithOwner(ctx, created.ID)
	if err == nil {
		t.Fatal("expected error for missing owner")
	}
	if errors.Is(err, services.ErrNotFound) {
		t.Fatal("missing owner must not look like a missing task request")
	}
}

func TestListFilters(t *testing.T) {
	svc, owner := newService(t)
	ctx := context.Background()
	other := uuid.New()

	seed := []struct {
		userID   uuid.UUID
		field    string
		helpFrom string
	}{
		{owner.ID, "Biology", "Chemistry"},
		{owner.ID, "Biology", "Physics"},
		{other, "Chemistry", "Chemistry"},
		{other, "Biology", "Chemistry"},
	}
	for _, s := range seed {
		if _, err := svc.Create(ctx, s.userID, validRequest(s.field, s.helpFrom)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no filter", Filter{}, 4},
		{"owner", Filter{ForUserID: &owner.ID}, 2},
		{"research field", Filter{ResearchField: "Biology"}, 3},
		{"both fields", Filter{ResearchField: "Biology", FieldRequestingHelpFrom: "Chemistry"}, 2},
		{"all three", Filter{ForUserID: &other, ResearchField: "Biology", FieldRequestingHelpFrom: "Chemistry"}, 1},
		{"no match", Filter{ResearchField: "History"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if got == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d results, got %d", tt.want, len(got))
			}
			for _, r := range got {
				if tt.filter.ResearchField != "" && r.ResearchField != tt.filter.ResearchField {
					t.Errorf("research field %q leaked into results", r.ResearchField)
				}
				if tt.filter.FieldRequestingHelpFrom != "" && r.FieldRequestingHelpFrom != tt.filter.FieldRequestingHelpFrom {
					t.Errorf("help field %q leaked into results", r.FieldRequestingHelpFrom)
				}
			}
		})
	}
}
