package ports

import (
	"context"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// UserService covers self-service profile operations for an authenticated
// user. The caller passes the identity resolved by the access guard.
type UserService interface {
	UpdateProfile(ctx context.Context, user *domain.User, patch domain.UserPatch) (*domain.User, error)
	DeleteAccount(ctx context.Context, user *domain.User) error
}
