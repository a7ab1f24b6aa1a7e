package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitlane/nutrition-api/internal/api/metrics"
	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/core/ports"
	"github.com/fitlane/nutrition-api/internal/token"
)

// AdminService implements back-office authentication and user management.
type AdminService struct {
	admins ports.AdminRepository
	users  ports.UserRepository
	issuer *token.Issuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAdminService(admins ports.AdminRepository, users ports.UserRepository, issuer *token.Issuer, log zerolog.Logger) *AdminService {
	return &AdminService{
		admins: admins,
		users:  users,
		issuer: issuer,
		log:    log,
		now:    time.Now,
	}
}

func (s *AdminService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			metrics.LoginsTotal.WithLabelValues("admin", "denied").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("admin", "denied").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(token.Claims{Subject: admin.Username, Admin: true})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("admin", "ok").Inc()
	return tok, admin, nil
}

func (s *AdminService) Create(ctx context.Context, actor *domain.Admin, username, password string, superadmin bool) (string, *domain.Admin, error) {
	if !actor.Superadmin {
		return "", nil, domain.ErrForbidden
	}

	if _, err := s.admins.FindByUsername(ctx, username); err == nil {
		return "", nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.admins.Create(ctx, &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Superadmin:   superadmin,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return "", nil, err
	}

	tok, err := s.issuer.Issue(token.Claims{Subject: created.Username, Admin: true})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, created, nil
}

func (s *AdminService) UpdateSelf(ctx context.Context, actor *domain.Admin, patch ports.AdminPatch) (*domain.Admin, error) {
	updated := *actor
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = string(hash)
	}
	// Only a superadmin may flip their own superadmin flag.
	if patch.Superadmin != nil && actor.Superadmin {
		updated.Superadmin = *patch.Superadmin
	}
	return s.admins.Update(ctx, &updated)
}

// Bootstrap creates the configured superadmin when no account with that
// username exists yet. Called once at startup.
func (s *AdminService) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	if _, err := s.admins.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.admins.Create(ctx, &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Superadmin:   true,
		CreatedAt:    s.now().UTC(),
	}); err != nil {
		return err
	}

	s.log.Info().Str("username", username).Msg("superadmin bootstrapped")
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context, skip, limit int64) ([]*domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.users.List(ctx, skip, limit)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AdminService) BlockUser(ctx context.Context, id string, blocked bool) (*domain.User, error) {
	return s.users.SetBlocked(ctx, id, blocked)
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *AdminService) Statistics(ctx context.Context) (*ports.Statistics, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	registered, err := s.users.CountRegistered(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.Statistics{TotalUsers: total, RegisteredUsers: registered}, nil
}
