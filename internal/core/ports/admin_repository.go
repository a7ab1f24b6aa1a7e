package ports

import (
	"context"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// AdminRepository persists back-office identities keyed by username.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}
