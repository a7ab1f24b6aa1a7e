package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/core/ports"
)

// UserService implements self-service profile operations. Profile updates go
// through the allow-listed UserPatch merge, so phone, password hash and the
// blocked flag can never be written from a request body.
type UserService struct {
	users ports.UserRepository
	now   func() time.Time
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, patch domain.UserPatch) (*domain.User, error) {
	if patch.Nickname != nil && *patch.Nickname != user.Nickname {
		other, err := s.users.FindByNickname(ctx, *patch.Nickname)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrNicknameTaken
		}
	}

	updated := *user
	patch.Apply(&updated)
	updated.UpdatedAt = s.now().UTC()

	return s.users.Upsert(ctx, &updated)
}

func (s *UserService) DeleteAccount(ctx context.Context, user *domain.User) error {
	return s.users.Delete(ctx, user.ID)
}
