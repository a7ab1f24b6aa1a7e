package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrAlreadyRegistered    = errors.New("phone already registered")
	ErrNicknameTaken        = errors.New("nickname already taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrVerificationNotFound = errors.New("verification record not found")
	ErrInvalidCode          = errors.New("invalid verification code")
	ErrCodeExpired          = errors.New("verification code expired")
	ErrPhoneNotVerified     = errors.New("phone not verified")
	ErrSMSDeliveryFailed    = errors.New("sms delivery failed")
	ErrUserBlocked          = errors.New("user is blocked")
	ErrForbidden            = errors.New("access forbidden")
)

// User is an account keyed by canonical phone number. A user with an empty
// PasswordHash is a shell created during verification and cannot log in.
type User struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone"`
	Nickname      string    `json:"nickname"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name,omitempty"`
	Age           int       `json:"age,omitempty"`
	WeightKg      float64   `json:"weight_kg,omitempty"`
	HeightCm      float64   `json:"height_cm,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	ActivityLevel string    `json:"activity_level,omitempty"`
	Allergies     string    `json:"allergies,omitempty"`
	Blocked       bool      `json:"blocked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Registered reports whether the account can authenticate by password.
func (u *User) Registered() bool {
	return u.PasswordHash != ""
}

// UserPatch carries the profile fields a user may change about themselves.
// Nil pointers mean "leave unchanged". Phone, password hash and the blocked
// flag are deliberately absent: they are never writable through a patch.
type UserPatch struct {
	Nickname      *string  `json:"nickname,omitempty"`
	Name          *string  `json:"name,omitempty"`
	Age           *int     `json:"age,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	HeightCm      *float64 `json:"height_cm,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	ActivityLevel *string  `json:"activity_level,omitempty"`
	Allergies     *string  `json:"allergies,omitempty"`
}

// Apply merges the set fields of the patch onto the user, field by field.
func (p UserPatch) Apply(u *User) {
	if p.Nickname != nil {
		u.Nickname = *p.Nickname
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.WeightKg != nil {
		u.WeightKg = *p.WeightKg
	}
	if p.HeightCm != nil {
		u.HeightCm = *p.HeightCm
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.ActivityLevel != nil {
		u.ActivityLevel = *p.ActivityLevel
	}
	if p.Allergies != nil {
		u.Allergies = *p.Allergies
	}
}

// Admin is a back-office account keyed by username.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Superadmin   bool      `json:"superadmin"`
	CreatedAt    time.Time `json:"created_at"`
}
