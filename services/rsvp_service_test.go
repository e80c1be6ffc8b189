package services

import (
	"context"
	"testing"
	"time"

	"undangan.link/models"
)

type rsvpFixture struct {
	svc         *RSVPService
	users       *fakeUserRepo
	invitations *fakeInvitationRepo
	rsvps       *fakeRSVPRepo
	owner       *models.User
	published   *models.Invitation
}

func newRSVPFixture() *rsvpFixture {
	users := newFakeUserRepo()
	invitations := newFakeInvitationRepo()
	rsvps := newFakeRSVPRepo(invitations)

	f := &rsvpFixture{
		svc: &RSVPService{
			repo:           rsvps,
			invitationRepo: invitations,
			userRepo:       users,
		},
		users:       users,
		invitations: invitations,
		rsvps:       rsvps,
	}
	f.owner = users.add(models.User{Username: "dewi", Email: "dewi@example.com", Role: models.RoleCustomer, Status: models.UserStatusActive})
	f.published = invitations.add(models.Invitation{UserID: f.owner.ID, Slug: "pub", Status: models.InvitationStatusPublished})
	return f
}

func attendingInput(invitationID uint, guestName string) CreateRSVPInput {
	return CreateRSVPInput{
		InvitationID: invitationID,
		GuestName:    guestName,
		Status:       models.RSVPStatusAttending,
		GuestCount:   2,
	}
}

func TestCreateRSVP(t *testing.T) {
	ctx := context.Background()

	t.Run("records the answer and bumps the counter", func(t *testing.T) {
		f := newRSVPFixture()
		rsvp, err := f.svc.CreateRSVP(ctx, attendingInput(f.published.ID, "Andi"))
		if err != nil {
			t.Fatalf("CreateRSVP: %v", err)
		}
		if rsvp.ID == 0 {
			t.Error("rsvp not persisted")
		}
		if got := f.invitations.invitations[f.published.ID].RSVPCount; got != 1 {
			t.Errorf("rsvp_count = %d, want 1", got)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newRSVPFixture()
		input := attendingInput(f.published.ID, "Andi")
		input.Status = models.RSVPStatus("probably")
		if _, err := f.svc.CreateRSVP(ctx, input); err != ErrInvalidRSVPStatus {
			t.Errorf("err = %v, want %v", err, ErrInvalidRSVPStatus)
		}
	})

	t.Run("non-positive guest count", func(t *testing.T) {
		f := newRSVPFixture()
		input := attendingInput(f.published.ID, "Andi")
		input.GuestCount = 0
		if _, err := f.svc.CreateRSVP(ctx, input); err != ErrInvalidGuestCount {
			t.Errorf("err = %v, want %v", err, ErrInvalidGuestCount)
		}
	})

	t.Run("draft invitation refuses answers", func(t *testing.T) {
		f := newRSVPFixture()
		draft := f.invitations.add(models.Invitation{UserID: f.owner.ID, Slug: "draft", Status: models.InvitationStatusDraft})
		if _, err := f.svc.CreateRSVP(ctx, attendingInput(draft.ID, "Andi")); err != ErrInvitationNotPublished {
			t.Errorf("err = %v, want %v", err, ErrInvitationNotPublished)
		}
	})

	t.Run("expired invitation refuses answers", func(t *testing.T) {
		f := newRSVPFixture()
		past := time.Now().UTC().Add(-time.Hour)
		expired := f.invitations.add(models.Invitation{UserID: f.owner.ID, Slug: "old", Status: models.InvitationStatusPublished, ExpiresAt: &past})
		if _, err := f.svc.CreateRSVP(ctx, attendingInput(expired.ID, "Andi")); err != ErrInvitationExpired {
			t.Errorf("err = %v, want %v", err, ErrInvitationExpired)
		}
	})

	t.Run("duplicate guest blocked per invitation", func(t *testing.T) {
		f := newRSVPFixture()
		if _, err := f.svc.CreateRSVP(ctx, attendingInput(f.published.ID, "Andi")); err != nil {
			t.Fatalf("first answer: %v", err)
		}
		if _, err := f.svc.CreateRSVP(ctx, attendingInput(f.published.ID, "Andi")); err != ErrGuestAlreadyResponded {
			t.Errorf("err = %v, want %v", err, ErrGuestAlreadyResponded)
		}

		// The same guest answers another invitation freely.
		second := f.invitations.add(models.Invitation{UserID: f.owner.ID, Slug: "second", Status: models.InvitationStatusPublished})
		if _, err := f.svc.CreateRSVP(ctx, attendingInput(second.ID, "Andi")); err != nil {
			t.Errorf("same guest on another invitation: %v", err)
		}
	})

	t.Run("duplicate email blocked", func(t *testing.T) {
		f := newRSVPFixture()
		email := "andi@example.com"
		first := attendingInput(f.published.ID, "Andi")
		first.GuestEmail = &email
		if _, err := f.svc.CreateRSVP(ctx, first); err != nil {
			t.Fatalf("first answer: %v", err)
		}
		second := attendingInput(f.published.ID, "A. Wijaya")
		second.GuestEmail = &email
		if _, err := f.svc.CreateRSVP(ctx, second); err != ErrGuestAlreadyResponded {
			t.Errorf("err = %v, want %v", err, ErrGuestAlreadyResponded)
		}
	})
}

func TestRSVPReadsRequireOwnership(t *testing.T) {
	ctx := context.Background()
	f := newRSVPFixture()
	stranger := f.users.add(models.User{Username: "sari", Email: "sari@example.com", Role: models.RoleCustomer, Status: models.UserStatusActive})
	admin := f.users.add(models.User{Username: "admin", Email: "admin@example.com", Role: models.RoleSuperAdmin, Status: models.UserStatusActive})

	if _, err := f.svc.CreateRSVP(ctx, attendingInput(f.published.ID, "Andi")); err != nil {
		t.Fatalf("seed rsvp: %v", err)
	}
	notAttending := attendingInput(f.published.ID, "Bona")
	notAttending.Status = models.RSVPStatusNotAttending
	notAttending.GuestCount = 1
	if _, err := f.svc.CreateRSVP(ctx, notAttending); err != nil {
		t.Fatalf("seed rsvp: %v", err)
	}

	t.Run("stranger denied", func(t *testing.T) {
		if _, err := f.svc.GetRSVPsByInvitation(ctx, f.published.ID, stranger.ID); err != ErrRSVPAccessDenied {
			t.Errorf("list err = %v, want %v", err, ErrRSVPAccessDenied)
		}
		if _, err := f.svc.GetRSVPStats(ctx, f.published.ID, stranger.ID); err != ErrRSVPAccessDenied {
			t.Errorf("stats err = %v, want %v", err, ErrRSVPAccessDenied)
		}
	})

	t.Run("owner reads", func(t *testing.T) {
		list, err := f.svc.GetRSVPsByInvitation(ctx, f.published.ID, f.owner.ID)
		if err != nil {
			t.Fatalf("GetRSVPsByInvitation: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("got %d rsvps, want 2", len(list))
		}

		stats, err := f.svc.GetRSVPStats(ctx, f.published.ID, f.owner.ID)
		if err != nil {
			t.Fatalf("GetRSVPStats: %v", err)
		}
		if stats.Total != 2 || stats.Attending != 1 || stats.NotAttending != 1 {
			t.Errorf("stats = %+v, want total 2, attending 1, not attending 1", stats)
		}
		if stats.TotalGuests != 3 {
			t.Errorf("total guests = %d, want 3", stats.TotalGuests)
		}
	})

	t.Run("super admin reads", func(t *testing.T) {
		if _, err := f.svc.GetRSVPsByInvitation(ctx, f.published.ID, admin.ID); err != nil {
			t.Errorf("GetRSVPsByInvitation as admin: %v", err)
		}
	})
}
