package ports

import (
	"context"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// VerificationRepository stores at most one live VerificationRecord per
// canonical phone. Put overwrites unconditionally (last write wins), which
// is what keeps concurrent code requests for the same phone benign.
type VerificationRepository interface {
	Put(ctx context.Context, rec *domain.VerificationRecord) error
	// Get returns domain.ErrVerificationNotFound when no record exists.
	Get(ctx context.Context, phone string) (*domain.VerificationRecord, error)
	Delete(ctx context.Context, phone string) error
}
