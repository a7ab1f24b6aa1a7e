package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fitlane/nutrition-api/internal/api/metrics"
	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/core/ports"
	"github.com/fitlane/nutrition-api/internal/token"
)

// AuthService implements the phone verification lifecycle:
//
//	no record → code issued → verified → registered
//
// A re-requested code always overwrites the prior record (last write wins),
// so only the most recent code is ever valid for a phone.
type AuthService struct {
	users  ports.UserRepository
	codes  ports.VerificationRepository
	sms    ports.SMSSender
	issuer *token.Issuer
	now    func() time.Time
}

func NewAuthService(users ports.UserRepository, codes ports.VerificationRepository, sms ports.SMSSender, issuer *token.Issuer) *AuthService {
	return &AuthService{
		users:  users,
		codes:  codes,
		sms:    sms,
		issuer: issuer,
		now:    time.Now,
	}
}

// RequestCode issues a fresh one-time code for the phone and dispatches it
// via SMS. The record is persisted before dispatch: when the gateway fails,
// the caller sees ErrSMSDeliveryFailed but a retry always succeeds by
// overwriting the stale record.
func (s *AuthService) RequestCode(ctx context.Context, rawPhone string) (string, error) {
	phone := domain.NormalizePhone(rawPhone)

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}
	if user != nil && user.Registered() {
		return "", domain.ErrAlreadyRegistered
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	rec := &domain.VerificationRecord{
		Phone:    phone,
		Code:     code,
		IssuedAt: s.now().UTC(),
	}
	if err := s.codes.Put(ctx, rec); err != nil {
		return "", err
	}
	metrics.CodesIssuedTotal.Inc()

	if err := s.sms.Send(ctx, phone, code); err != nil {
		metrics.SMSFailuresTotal.Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrSMSDeliveryFailed, err)
	}

	return phone, nil
}

// VerifyCode checks the supplied code against the live record for the phone.
// An expired record is deleted as a side effect, returning the phone to the
// no-record state so a fresh request starts clean.
func (s *AuthService) VerifyCode(ctx context.Context, rawPhone, code string) error {
	phone := domain.NormalizePhone(rawPhone)

	rec, err := s.codes.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationNotFound) {
			metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
			return domain.ErrInvalidCode
		}
		return err
	}

	if rec.Expired(s.now().UTC()) {
		if err := s.codes.Delete(ctx, phone); err != nil {
			return err
		}
		metrics.VerificationsTotal.WithLabelValues("expired").Inc()
		return domain.ErrCodeExpired
	}

	if rec.Code != code {
		metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidCode
	}

	rec.Verified = true
	if err := s.codes.Put(ctx, rec); err != nil {
		return err
	}
	metrics.VerificationsTotal.WithLabelValues("ok").Inc()
	return nil
}

// Register promotes a verified phone to a full account: hashes the password,
// upserts the identity, consumes the verification record, and issues a token
// bound to the canonical phone.
func (s *AuthService) Register(ctx context.Context, rawPhone, password, nickname string) (string, *domain.User, error) {
	phone := domain.NormalizePhone(rawPhone)

	rec, err := s.codes.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationNotFound) {
			return "", nil, domain.ErrPhoneNotVerified
		}
		return "", nil, err
	}
	if !rec.Verified {
		return "", nil, domain.ErrPhoneNotVerified
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}
	if user != nil && user.Registered() {
		return "", nil, domain.ErrAlreadyRegistered
	}

	if other, err := s.users.FindByNickname(ctx, nickname); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
	} else if other.Phone != phone {
		return "", nil, domain.ErrNicknameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	if user == nil {
		user = &domain.User{Phone: phone, CreatedAt: now}
	}
	user.Nickname = nickname
	user.PasswordHash = string(hash)
	user.UpdatedAt = now

	created, err := s.users.Upsert(ctx, user)
	if err != nil {
		return "", nil, err
	}

	if err := s.codes.Delete(ctx, phone); err != nil {
		return "", nil, err
	}

	tok, err := s.issuer.Issue(token.Claims{Subject: phone})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	metrics.RegistrationsTotal.Inc()
	return tok, created, nil
}

// Login authenticates a registered phone by password. Unknown phones and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, rawPhone, password string) (string, *domain.User, error) {
	phone := domain.NormalizePhone(rawPhone)

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("user", "denied").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Blocked {
		metrics.LoginsTotal.WithLabelValues("user", "denied").Inc()
		return "", nil, domain.ErrUserBlocked
	}
	if !user.Registered() || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("user", "denied").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(token.Claims{Subject: phone})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("user", "ok").Inc()
	return tok, user, nil
}

// generateCode draws a fixed-length digit string from crypto/rand.
func generateCode() (string, error) {
	buf := make([]byte, domain.CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf[i] = '0' + byte(n.Int64())
	}
	return string(buf), nil
}
