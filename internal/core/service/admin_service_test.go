package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/core/ports"
	"github.com/fitlane/nutrition-api/internal/token"
)

type stubAdminRepo struct {
	admins map[string]*domain.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	if a, ok := r.admins[username]; ok {
		return cloneAdmin(a), nil
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, exists := r.admins[admin.Username]; exists {
		return nil, domain.ErrAlreadyRegistered
	}
	copy := cloneAdmin(admin)
	copy.ID = admin.Username
	r.admins[copy.Username] = cloneAdmin(copy)
	return cloneAdmin(copy), nil
}

func (r *stubAdminRepo) Update(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, exists := r.admins[admin.Username]; !exists {
		return nil, domain.ErrAdminNotFound
	}
	r.admins[admin.Username] = cloneAdmin(admin)
	return cloneAdmin(admin), nil
}

func newAdminFixture() (*AdminService, *stubAdminRepo, *stubUserRepo) {
	admins := newStubAdminRepo()
	users := newStubUserRepo()
	svc := NewAdminService(admins, users, token.NewIssuer("secret"), zerolog.Nop())
	return svc, admins, users
}

func seedAdmin(t *testing.T, repo *stubAdminRepo, username, password string, super bool) *domain.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin, err := repo.Create(context.Background(), &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Superadmin:   super,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func TestAdminService_Login(t *testing.T) {
	svc, admins, _ := newAdminFixture()
	seedAdmin(t, admins, "root", "rootpass", true)

	tok, admin, err := svc.Login(context.Background(), "root", "rootpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if admin.Username != "root" {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	claims, err := token.NewIssuer("secret").Validate(tok)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Subject != "root" || !claims.Admin {
		t.Errorf("claims = %+v, want admin token for root", claims)
	}
}

func TestAdminService_Login_BadCredentials(t *testing.T) {
	svc, admins, _ := newAdminFixture()
	seedAdmin(t, admins, "root", "rootpass", true)

	if _, _, err := svc.Login(context.Background(), "root", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost", "rootpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown admin must look like bad credentials, got %v", err)
	}
}

func TestAdminService_Create_RequiresSuperadmin(t *testing.T) {
	svc, admins, _ := newAdminFixture()
	root := seedAdmin(t, admins, "root", "rootpass", true)
	plain := seedAdmin(t, admins, "plain", "plainpass", false)

	if _, _, err := svc.Create(context.Background(), plain, "new", "newpass123", false); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-superadmin, got %v", err)
	}

	_, created, err := svc.Create(context.Background(), root, "new", "newpass123", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Superadmin {
		t.Error("created admin must not be superadmin unless requested")
	}

	if _, _, err := svc.Create(context.Background(), root, "new", "again", false); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered for duplicate, got %v", err)
	}
}

func TestAdminService_UpdateSelf(t *testing.T) {
	svc, admins, _ := newAdminFixture()
	root := seedAdmin(t, admins, "root", "rootpass", true)
	plain := seedAdmin(t, admins, "plain", "plainpass", false)

	newPass := "changedpass"
	updated, err := svc.UpdateSelf(context.Background(), root, ports.AdminPatch{Password: &newPass})
	if err != nil {
		t.Fatalf("update self: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPass)) != nil {
		t.Error("password change not applied")
	}

	// A plain admin cannot self-promote.
	super := true
	updated, err = svc.UpdateSelf(context.Background(), plain, ports.AdminPatch{Superadmin: &super})
	if err != nil {
		t.Fatalf("update self: %v", err)
	}
	if updated.Superadmin {
		t.Error("non-superadmin must not be able to self-promote")
	}
}

func TestAdminService_Bootstrap(t *testing.T) {
	svc, admins, _ := newAdminFixture()
	ctx := context.Background()

	if err := svc.Bootstrap(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	created, err := admins.FindByUsername(ctx, "root")
	if err != nil {
		t.Fatalf("superadmin not created: %v", err)
	}
	if !created.Superadmin {
		t.Error("bootstrapped admin must be superadmin")
	}

	// Idempotent: a second bootstrap leaves the account untouched.
	if err := svc.Bootstrap(ctx, "root", "otherpass"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	again, _ := admins.FindByUsername(ctx, "root")
	if again.PasswordHash != created.PasswordHash {
		t.Error("bootstrap must not overwrite an existing account")
	}

	// Empty config skips bootstrap entirely.
	if err := svc.Bootstrap(ctx, "", ""); err != nil {
		t.Fatalf("empty bootstrap: %v", err)
	}
}

func TestAdminService_UserManagement(t *testing.T) {
	svc, _, users := newAdminFixture()
	ctx := context.Background()

	u, _ := users.Upsert(ctx, &domain.User{Phone: "+79990000000", Nickname: "alice", PasswordHash: "x"})
	_, _ = users.Upsert(ctx, &domain.User{Phone: "+79991111111", Nickname: "shell"})

	blocked, err := svc.BlockUser(ctx, u.ID, true)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	if !blocked.Blocked {
		t.Error("blocked flag not set")
	}

	stats, err := svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalUsers != 2 || stats.RegisteredUsers != 1 {
		t.Errorf("stats = %+v, want 2 total / 1 registered", stats)
	}

	if err := svc.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetUser(ctx, u.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}
