package ports

import (
	"context"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// AuthService drives a phone through the verification lifecycle and issues
// bearer tokens for registered accounts.
type AuthService interface {
	// RequestCode issues (or re-issues) a one-time code for the phone and
	// dispatches it by SMS. Returns the canonical phone the code was sent to.
	RequestCode(ctx context.Context, rawPhone string) (string, error)
	VerifyCode(ctx context.Context, rawPhone, code string) error
	Register(ctx context.Context, rawPhone, password, nickname string) (string, *domain.User, error)
	Login(ctx context.Context, rawPhone, password string) (string, *domain.User, error)
}
