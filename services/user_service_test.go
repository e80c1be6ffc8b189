package services

import (
	"context"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/fieldmask"
	"undangan.link/pkg/queryparams"
)

func newUserServiceForTest() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return &UserService{repo: repo, masker: fieldmask.Noop{}}, repo
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("customer starts active", func(t *testing.T) {
		svc, _ := newUserServiceForTest()
		user, err := svc.CreateUser(ctx, CreateUserInput{
			Name: "Dewi", Username: "dewi", Email: "dewi@example.com",
			Password: "secret123", Role: models.RoleCustomer,
		})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if user.Status != models.UserStatusActive {
			t.Errorf("status = %s, want %s", user.Status, models.UserStatusActive)
		}
		if user.PasswordHash == "secret123" || user.PasswordHash == "" {
			t.Error("password stored without hashing")
		}
	})

	t.Run("mitra starts pending", func(t *testing.T) {
		svc, _ := newUserServiceForTest()
		user, err := svc.CreateUser(ctx, CreateUserInput{
			Name: "Studio Foto", Username: "studio", Email: "studio@example.com",
			Password: "secret123", Role: models.RoleMitra,
		})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if user.Status != models.UserStatusPending {
			t.Errorf("status = %s, want %s", user.Status, models.UserStatusPending)
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		svc, _ := newUserServiceForTest()
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Name: "X", Username: "x", Email: "x@example.com",
			Password: "secret123", Role: models.UserRole("admin"),
		})
		if err != ErrInvalidRole {
			t.Errorf("err = %v, want %v", err, ErrInvalidRole)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		svc, repo := newUserServiceForTest()
		repo.add(models.User{Username: "dewi", Email: "other@example.com"})
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Name: "Dewi", Username: "dewi", Email: "dewi@example.com",
			Password: "secret123", Role: models.RoleCustomer,
		})
		if err != ErrUsernameTaken {
			t.Errorf("err = %v, want %v", err, ErrUsernameTaken)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc, repo := newUserServiceForTest()
		repo.add(models.User{Username: "other", Email: "dewi@example.com"})
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Name: "Dewi", Username: "dewi", Email: "dewi@example.com",
			Password: "secret123", Role: models.RoleCustomer,
		})
		if err != ErrEmailTaken {
			t.Errorf("err = %v, want %v", err, ErrEmailTaken)
		}
	})
}

func TestAuthenticateUser(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*UserService, *fakeUserRepo, *models.User) {
		svc, repo := newUserServiceForTest()
		user, err := svc.CreateUser(ctx, CreateUserInput{
			Name: "Dewi", Username: "dewi", Email: "dewi@example.com",
			Password: "secret123", Role: models.RoleCustomer,
		})
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
		return svc, repo, user
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, repo, seeded := setup(t)
		user, err := svc.AuthenticateUser(ctx, "dewi", "secret123", "10.0.0.1", "test-agent")
		if err != nil {
			t.Fatalf("AuthenticateUser: %v", err)
		}
		if user == nil {
			t.Fatal("expected a user, got nil")
		}
		if user.LastLogin == nil {
			t.Error("last login not stamped")
		}
		if len(repo.loginLogs) != 1 || !repo.loginLogs[0].Success || repo.loginLogs[0].UserID != seeded.ID {
			t.Errorf("login log = %+v, want one success row for user %d", repo.loginLogs, seeded.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, seeded := setup(t)
		user, err := svc.AuthenticateUser(ctx, "dewi", "wrong", "10.0.0.1", "test-agent")
		if err != nil {
			t.Fatalf("AuthenticateUser: %v", err)
		}
		if user != nil {
			t.Error("expected nil user on bad password")
		}
		if len(repo.loginLogs) != 1 || repo.loginLogs[0].Success || repo.loginLogs[0].UserID != seeded.ID {
			t.Errorf("login log = %+v, want one failed row for user %d", repo.loginLogs, seeded.ID)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		svc, repo, _ := setup(t)
		user, err := svc.AuthenticateUser(ctx, "ghost", "secret123", "10.0.0.1", "test-agent")
		if err != nil {
			t.Fatalf("AuthenticateUser: %v", err)
		}
		if user != nil {
			t.Error("expected nil user for unknown username")
		}
		if len(repo.loginLogs) != 1 || repo.loginLogs[0].Success || repo.loginLogs[0].UserID != 0 {
			t.Errorf("login log = %+v, want one failed row with user id 0", repo.loginLogs)
		}
	})
}

func TestApproveUser(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserServiceForTest()

	admin := repo.add(models.User{Username: "admin", Email: "admin@example.com", Role: models.RoleSuperAdmin, Status: models.UserStatusActive})
	mitra := repo.add(models.User{Username: "studio", Email: "studio@example.com", Role: models.RoleMitra, Status: models.UserStatusPending})

	t.Run("pending mitra becomes active", func(t *testing.T) {
		approved, err := svc.ApproveUser(ctx, mitra.ID, admin.ID)
		if err != nil {
			t.Fatalf("ApproveUser: %v", err)
		}
		if approved.Status != models.UserStatusActive {
			t.Errorf("status = %s, want active", approved.Status)
		}
		if approved.ApprovedBy == nil || *approved.ApprovedBy != admin.ID {
			t.Error("approver not recorded")
		}
		if approved.ApprovedAt == nil {
			t.Error("approval time not stamped")
		}
	})

	t.Run("missing approver rejected", func(t *testing.T) {
		if _, err := svc.ApproveUser(ctx, mitra.ID, 999); err != ErrUserNotFound {
			t.Errorf("err = %v, want %v", err, ErrUserNotFound)
		}
	})

	t.Run("missing user rejected", func(t *testing.T) {
		if _, err := svc.ApproveUser(ctx, 999, admin.ID); err != ErrUserNotFound {
			t.Errorf("err = %v, want %v", err, ErrUserNotFound)
		}
	})
}

func TestGetUsersPagination(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserServiceForTest()
	for i := 0; i < 5; i++ {
		repo.add(models.User{Username: string(rune('a' + i)), Email: string(rune('a'+i)) + "@example.com", Status: models.UserStatusActive})
	}

	result, err := svc.GetUsers(ctx, queryparams.ListParams{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if result.Meta.TotalItems != 5 {
		t.Errorf("total items = %d, want 5", result.Meta.TotalItems)
	}
	if result.Meta.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", result.Meta.TotalPages)
	}
	users, ok := result.Data.([]models.User)
	if !ok {
		t.Fatalf("data is %T, want []models.User", result.Data)
	}
	if len(users) != 2 {
		t.Errorf("page size = %d, want 2", len(users))
	}
}
