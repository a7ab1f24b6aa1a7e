package ports

import (
	"context"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// UserRepository persists user identities keyed by canonical phone.
type UserRepository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByNickname(ctx context.Context, nickname string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Upsert atomically creates or replaces the user identified by its phone.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, skip, limit int64) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// CountRegistered counts users that can authenticate by password.
	CountRegistered(ctx context.Context) (int64, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
