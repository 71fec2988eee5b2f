package collabrequests

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/database/dbtest"
	"github.com/gradcollab/gradcollab-backend/internal/email"
	"github.com/gradcollab/gradcollab-backend/internal/mailer"
	"github.com/gradcollab/gradcollab-backend/internal/models"
	"github.com/gradcollab/gradcollab-backend/internal/services"
	"gorm.io/gorm"
)

func geneStudy() *CreateCollabRequestRequest {
	return &CreateCollabRequestRequest{
		Field:                "Biology",
		Subject:              "Gene study",
		ProjectImpactSummary: "Impact",
		ExpectedTasks:        "Sequencing",
		ExpectedSkills:       "Lab work",
		ExpectedTime:         "6mo",
		Offer:                "Co-authorship",
	}
}

type fixture struct {
	svc   *CollabRequestService
	db    *gorm.DB
	mail  *mailer.Recorder
	owner *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t, &CollabRequest{}, &CollabInvite{})
	owner := &models.User{Email: "owner@example.com", Password: "x"}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	cfg := &config.Config{WebClientOrigin: "https://vivadoc.io", MailFrom: "invites@vivadoc.io"}
	rec := &mailer.Recorder{}
	return &fixture{svc: NewCollabRequestService(db, rec, cfg), db: db, mail: rec, owner: owner}
}

func TestCreateStartsWithNoInvites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.owner.ID, geneStudy())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}

	got, err := f.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.InvitedCollabs == nil || len(got.InvitedCollabs) != 0 {
		t.Fatalf("expected empty invite list, got %#v", got.InvitedCollabs)
	}
	if got.UserID != f.owner.ID {
		t.Fatalf("expected owner %s, got %s", f.owner.ID, got.UserID)
	}
}

func TestCreateRequiresFields(t *testing.T) {
	f := newFixture(t)

	req := geneStudy()
	req.Offer = ""
	req.ExpectedTime = ""
	_, err := f.svc.Create(context.Background(), f.owner.ID, req)

	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["offer"] != "Offer cannot be blank" || verr.Fields["expectedTime"] != "Expected time cannot be blank" {
		t.Fatalf("unexpected messages: %v", verr.Fields)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected two field errors, got %v", verr.Fields)
	}
}

func TestGetUnknown(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Get(context.Background(), uuid.New()); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInviteTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.owner.ID, geneStudy())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Invite(ctx, f.owner.ID, created.ID, "a@example.com"); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if err := f.svc.Invite(ctx, f.owner.ID, created.ID, "a@example.com"); !errors.Is(err, services.ErrInviteConflict) {
		t.Fatalf("expected ErrInviteConflict on second invite, got %v", err)
	}

	sent := f.mail.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sent))
	}
	msg := sent[0]
	if msg.To != "a@example.com" || msg.From != "invites@vivadoc.io" || msg.Subject != email.InviteSubject {
		t.Fatalf("unexpected message envelope: %+v", msg)
	}
	link := "https://vivadoc.io/grad-collab/#/browse/" + created.ID.String()
	if !strings.Contains(msg.Text, link) || !strings.Contains(msg.HTML, link) {
		t.Fatalf("expected link %s in both bodies", link)
	}
	if strings.Contains(msg.Text, "Additional info") {
		t.Fatal("empty additional info should be left out")
	}

	got, err := f.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.InvitedCollabs) != 1 || got.InvitedCollabs[0] != "a@example.com" {
		t.Fatalf("expected single invite, got %v", got.InvitedCollabs)
	}
}

func TestInviteNormalizesBeforeDedup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())

	if err := f.svc.Invite(ctx, f.owner.ID, created.ID, "Jane.Doe+lab@Gmail.com"); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if err := f.svc.Invite(ctx, f.owner.ID, created.ID, "jane.doe@googlemail.com"); !errors.Is(err, services.ErrInviteConflict) {
		t.Fatalf("expected conflict for equivalent address, got %v", err)
	}

	got, _ := f.svc.Get(ctx, created.ID)
	if len(got.InvitedCollabs) != 1 || got.InvitedCollabs[0] != "jane.doe@gmail.com" {
		t.Fatalf("unexpected invites: %v", got.InvitedCollabs)
	}
}

func TestInviteKeepsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())

	want := []string{"c@example.com", "a@example.com", "b@example.com"}
	for _, addr := range want {
		if err := f.svc.Invite(ctx, f.owner.ID, created.ID, addr); err != nil {
			t.Fatalf("invite %s: %v", addr, err)
		}
	}

	got, _ := f.svc.Get(ctx, created.ID)
	if strings.Join(got.InvitedCollabs, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got.InvitedCollabs)
	}
}

func TestInviteRejectsInvalidEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())

	err := f.svc.Invite(ctx, f.owner.ID, created.ID, "not-an-email")
	var verr *services.ValidationError
	if !errors.As(err, &verr) || verr.Fields["invitedCollabEmail"] != "Email is not valid" {
		t.Fatalf("expected invitedCollabEmail validation error, got %v", err)
	}
	if len(f.mail.Sent()) != 0 {
		t.Fatal("no email should be sent for invalid input")
	}
}

func TestInviteByNonOwnerConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())

	if err := f.svc.Invite(ctx, uuid.New(), created.ID, "a@example.com"); !errors.Is(err, services.ErrInviteConflict) {
		t.Fatalf("expected conflict for non-owner, got %v", err)
	}
	if err := f.svc.Invite(ctx, f.owner.ID, uuid.New(), "a@example.com"); !errors.Is(err, services.ErrInviteConflict) {
		t.Fatalf("expected conflict for unknown request, got %v", err)
	}

	got, _ := f.svc.Get(ctx, created.ID)
	if len(got.InvitedCollabs) != 0 {
		t.Fatalf("expected no invites, got %v", got.InvitedCollabs)
	}
	if len(f.mail.Sent()) != 0 {
		t.Fatal("no email should be sent on conflict")
	}
}

// The test database has a single connection, so these calls reach SQLite
// one statement at a time. This checks dedup across interleaved callers;
// TestInviteUniqueIndex checks the constraint that makes it atomic.
func TestInviteConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.svc.Invite(ctx, f.owner.ID, created.ID, "race@example.com")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, services.ErrInviteConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflicts != callers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", callers-1, ok, conflicts)
	}
	if n := len(f.mail.Sent()); n != 1 {
		t.Fatalf("expected one email, got %d", n)
	}
	got, _ := f.svc.Get(ctx, created.ID)
	if len(got.InvitedCollabs) != 1 {
		t.Fatalf("expected one invite, got %v", got.InvitedCollabs)
	}
}

func TestInviteKeptWhenMailFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())
	f.mail.Err = errors.New("provider unavailable")

	err := f.svc.Invite(ctx, f.owner.ID, created.ID, "a@example.com")
	if err == nil || errors.Is(err, services.ErrInviteConflict) {
		t.Fatalf("expected dispatch error, got %v", err)
	}

	got, _ := f.svc.Get(ctx, created.ID)
	if len(got.InvitedCollabs) != 1 {
		t.Fatalf("invite should stay recorded, got %v", got.InvitedCollabs)
	}
}

func TestListForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())
	if _, err := f.svc.Create(ctx, uuid.New(), geneStudy()); err != nil {
		t.Fatalf("create other: %v", err)
	}
	if err := f.svc.Invite(ctx, f.owner.ID, mine.ID, "a@example.com"); err != nil {
		t.Fatalf("invite: %v", err)
	}

	got, err := f.svc.ListForUser(ctx, f.owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("expected only own request, got %+v", got)
	}
	if len(got[0].InvitedCollabs) != 1 {
		t.Fatalf("expected invites on listed request, got %v", got[0].InvitedCollabs)
	}
}

func TestInviteUniqueIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())

	first := CollabInvite{CollabRequestID: created.ID, Email: "a@example.com"}
	if err := f.db.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}

	dup := CollabInvite{CollabRequestID: created.ID, Email: "a@example.com"}
	if err := f.db.Create(&dup).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	other, _ := f.svc.Create(ctx, f.owner.ID, geneStudy())
	if err := f.db.Create(&CollabInvite{CollabRequestID: other.ID, Email: "a@example.com"}).Error; err != nil {
		t.Fatalf("same email on another request should be allowed: %v", err)
	}
}
