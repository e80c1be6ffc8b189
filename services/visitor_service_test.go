package services

import (
	"context"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/fieldmask"
	"undangan.link/repositories"
)

type visitorFixture struct {
	svc         *VisitorService
	users       *fakeUserRepo
	invitations *fakeInvitationRepo
	visitors    *fakeVisitorRepo
	owner       *models.User
	published   *models.Invitation
}

func newVisitorFixture(t *testing.T) *visitorFixture {
	t.Helper()
	masker, err := fieldmask.NewAESMasker([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewAESMasker: %v", err)
	}

	users := newFakeUserRepo()
	invitations := newFakeInvitationRepo()
	visitors := newFakeVisitorRepo(invitations)

	f := &visitorFixture{
		svc: &VisitorService{
			repo:           visitors,
			invitationRepo: invitations,
			userRepo:       users,
			masker:         masker,
		},
		users:       users,
		invitations: invitations,
		visitors:    visitors,
	}
	f.owner = users.add(models.User{Username: "dewi", Email: "dewi@example.com", Role: models.RoleCustomer, Status: models.UserStatusActive})
	f.published = invitations.add(models.Invitation{UserID: f.owner.ID, Slug: "pub", Status: models.InvitationStatusPublished})
	return f
}

func TestLogVisitor(t *testing.T) {
	ctx := context.Background()

	t.Run("masks at rest and bumps the view counter", func(t *testing.T) {
		f := newVisitorFixture(t)
		visitor, err := f.svc.LogVisitor(ctx, f.published.ID, "203.0.113.9", "Mozilla/5.0", nil)
		if err != nil {
			t.Fatalf("LogVisitor: %v", err)
		}
		if visitor.IPAddress != "203.0.113.9" {
			t.Errorf("returned ip = %q, want the plain value", visitor.IPAddress)
		}

		stored := f.visitors.visitors[0]
		if stored.IPAddress == "203.0.113.9" {
			t.Error("ip stored unmasked")
		}
		if stored.UserAgent == "Mozilla/5.0" {
			t.Error("user agent stored unmasked")
		}
		if got := f.invitations.invitations[f.published.ID].ViewCount; got != 1 {
			t.Errorf("view_count = %d, want 1", got)
		}
	})

	t.Run("repeat visits from one ip stay one unique visitor", func(t *testing.T) {
		f := newVisitorFixture(t)
		for i := 0; i < 3; i++ {
			if _, err := f.svc.LogVisitor(ctx, f.published.ID, "203.0.113.9", "Mozilla/5.0", nil); err != nil {
				t.Fatalf("LogVisitor: %v", err)
			}
		}
		if _, err := f.svc.LogVisitor(ctx, f.published.ID, "198.51.100.7", "Mozilla/5.0", nil); err != nil {
			t.Fatalf("LogVisitor: %v", err)
		}

		stats, err := f.svc.GetVisitorStats(ctx, repositories.VisitorStatsQuery{InvitationID: f.published.ID})
		if err != nil {
			t.Fatalf("GetVisitorStats: %v", err)
		}
		if stats.TotalVisits != 4 {
			t.Errorf("total visits = %d, want 4", stats.TotalVisits)
		}
		if stats.UniqueVisitors != 2 {
			t.Errorf("unique visitors = %d, want 2", stats.UniqueVisitors)
		}
	})

	t.Run("unknown invitation", func(t *testing.T) {
		f := newVisitorFixture(t)
		if _, err := f.svc.LogVisitor(ctx, 999, "203.0.113.9", "Mozilla/5.0", nil); err != ErrVisitInvitationNotFound {
			t.Errorf("err = %v, want %v", err, ErrVisitInvitationNotFound)
		}
	})
}

func TestGetUserStats(t *testing.T) {
	ctx := context.Background()
	f := newVisitorFixture(t)
	f.users.add(models.User{Username: "studio", Email: "studio@example.com", Role: models.RoleMitra, Status: models.UserStatusPending})
	f.users.add(models.User{Username: "admin", Email: "admin@example.com", Role: models.RoleSuperAdmin, Status: models.UserStatusActive})

	stats, err := f.svc.GetUserStats(ctx)
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if stats.TotalUsers != 3 {
		t.Errorf("total users = %d, want 3", stats.TotalUsers)
	}
	if stats.PendingApproval != 1 {
		t.Errorf("pending approval = %d, want 1", stats.PendingApproval)
	}
}

func TestGetInvitationStats(t *testing.T) {
	ctx := context.Background()
	f := newVisitorFixture(t)
	other := f.users.add(models.User{Username: "sari", Email: "sari@example.com", Role: models.RoleCustomer, Status: models.UserStatusActive})
	f.invitations.add(models.Invitation{UserID: f.owner.ID, Slug: "draft", Status: models.InvitationStatusDraft})
	f.invitations.add(models.Invitation{UserID: other.ID, Slug: "other", Status: models.InvitationStatusPublished})

	t.Run("platform-wide", func(t *testing.T) {
		stats, err := f.svc.GetInvitationStats(ctx, nil)
		if err != nil {
			t.Fatalf("GetInvitationStats: %v", err)
		}
		if stats.TotalInvitations != 3 {
			t.Errorf("total = %d, want 3", stats.TotalInvitations)
		}
		if stats.PublishedCount != 2 || stats.DraftCount != 1 {
			t.Errorf("published/draft = %d/%d, want 2/1", stats.PublishedCount, stats.DraftCount)
		}
	})

	t.Run("scoped to one owner", func(t *testing.T) {
		stats, err := f.svc.GetInvitationStats(ctx, &f.owner.ID)
		if err != nil {
			t.Fatalf("GetInvitationStats: %v", err)
		}
		if stats.TotalInvitations != 2 {
			t.Errorf("total = %d, want 2", stats.TotalInvitations)
		}
	})

	t.Run("unknown owner", func(t *testing.T) {
		missing := uint(999)
		if _, err := f.svc.GetInvitationStats(ctx, &missing); err != ErrStatsUserNotFound {
			t.Errorf("err = %v, want %v", err, ErrStatsUserNotFound)
		}
	})
}
