package ports

import (
	"context"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// AdminPatch carries the fields an admin may change on their own account.
type AdminPatch struct {
	Password   *string
	Superadmin *bool
}

// Statistics is the aggregate counters shown on the admin dashboard.
type Statistics struct {
	TotalUsers      int64 `json:"total_users"`
	RegisteredUsers int64 `json:"registered_users"`
}

// AdminService covers back-office authentication and user management.
type AdminService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	// Create provisions a new admin. Only superadmins may call it.
	Create(ctx context.Context, actor *domain.Admin, username, password string, superadmin bool) (string, *domain.Admin, error)
	UpdateSelf(ctx context.Context, actor *domain.Admin, patch AdminPatch) (*domain.Admin, error)
	// Bootstrap ensures the configured superadmin exists at startup.
	Bootstrap(ctx context.Context, username, password string) error

	ListUsers(ctx context.Context, skip, limit int64) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	BlockUser(ctx context.Context, id string, blocked bool) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*Statistics, error)
}
