package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

func newTestRepo(t *testing.T) *VerificationRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVerificationRepository(client)
}

func TestVerificationRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	issued := time.Now().UTC().Truncate(time.Second)
	rec := &domain.VerificationRecord{
		Phone:    "+79990000000",
		Code:     "1234",
		IssuedAt: issued,
	}
	if err := repo.Put(ctx, rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.Get(ctx, "+79990000000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "1234" || !got.IssuedAt.Equal(issued) || got.Verified {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestVerificationRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.Get(context.Background(), "+79990000000"); !errors.Is(err, domain.ErrVerificationNotFound) {
		t.Fatalf("expected ErrVerificationNotFound, got %v", err)
	}
}

func TestVerificationRepository_Overwrite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.Put(ctx, &domain.VerificationRecord{Phone: "+79990000000", Code: "1111", IssuedAt: time.Now().UTC()})
	_ = repo.Put(ctx, &domain.VerificationRecord{Phone: "+79990000000", Code: "2222", IssuedAt: time.Now().UTC()})

	got, err := repo.Get(ctx, "+79990000000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "2222" {
		t.Errorf("last write must win, got code %q", got.Code)
	}
}

func TestVerificationRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.Put(ctx, &domain.VerificationRecord{Phone: "+79990000000", Code: "1234", IssuedAt: time.Now().UTC()})
	if err := repo.Delete(ctx, "+79990000000"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "+79990000000"); !errors.Is(err, domain.ErrVerificationNotFound) {
		t.Fatalf("record must be gone, got %v", err)
	}

	// Deleting an absent record is not an error.
	if err := repo.Delete(ctx, "+79990000000"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestVerificationRepository_KeysAreScoped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_ = repo.Put(ctx, &domain.VerificationRecord{Phone: "+79990000000", Code: "1111", IssuedAt: time.Now().UTC()})
	_ = repo.Put(ctx, &domain.VerificationRecord{Phone: "+79991111111", Code: "2222", IssuedAt: time.Now().UTC()})

	a, _ := repo.Get(ctx, "+79990000000")
	b, _ := repo.Get(ctx, "+79991111111")
	if a.Code == b.Code {
		t.Error("records for different phones must not collide")
	}
}
