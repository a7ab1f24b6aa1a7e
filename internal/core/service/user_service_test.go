package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

func strptr(s string) *string   { return &s }
func f64ptr(f float64) *float64 { return &f }

func TestUserService_UpdateProfile(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users)
	ctx := context.Background()

	u, _ := users.Upsert(ctx, &domain.User{
		Phone:        "+79990000000",
		Nickname:     "alice",
		PasswordHash: "hash",
	})

	updated, err := svc.UpdateProfile(ctx, u, domain.UserPatch{
		Name:     strptr("Alice"),
		WeightKg: f64ptr(61.5),
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Alice" || updated.WeightKg != 61.5 {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.PasswordHash != "hash" {
		t.Error("password hash must survive a profile patch")
	}
	if updated.Phone != "+79990000000" {
		t.Error("phone must survive a profile patch")
	}
}

func TestUserService_UpdateProfile_NicknameConflict(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users)
	ctx := context.Background()

	u, _ := users.Upsert(ctx, &domain.User{Phone: "+79990000000", Nickname: "alice", PasswordHash: "x"})
	_, _ = users.Upsert(ctx, &domain.User{Phone: "+79991111111", Nickname: "bob", PasswordHash: "y"})

	if _, err := svc.UpdateProfile(ctx, u, domain.UserPatch{Nickname: strptr("bob")}); !errors.Is(err, domain.ErrNicknameTaken) {
		t.Fatalf("expected ErrNicknameTaken, got %v", err)
	}

	// Re-asserting one's own nickname is not a conflict.
	if _, err := svc.UpdateProfile(ctx, u, domain.UserPatch{Nickname: strptr("alice")}); err != nil {
		t.Fatalf("own nickname must not conflict: %v", err)
	}
}

func TestUserService_DeleteAccount(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users)
	ctx := context.Background()

	u, _ := users.Upsert(ctx, &domain.User{Phone: "+79990000000", Nickname: "alice", PasswordHash: "x"})
	if err := svc.DeleteAccount(ctx, u); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := users.FindByPhone(ctx, "+79990000000"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("account must be gone, got %v", err)
	}
}
