package domain

import "time"

const (
	// CodeLength is the number of digits in a one-time SMS code.
	CodeLength = 4

	// CodeTTL is how long an issued code stays valid. Expiry is evaluated
	// lazily at verify time; there is no background sweep.
	CodeTTL = 15 * time.Minute
)

// VerificationRecord tracks a single phone through the code-issued →
// verified lifecycle. At most one live record exists per canonical phone:
// re-requesting a code overwrites the record wholesale, never appends.
type VerificationRecord struct {
	Phone    string    `json:"phone"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
	Verified bool      `json:"verified"`
}

// Expired reports whether the code's validity window has elapsed at now.
func (r *VerificationRecord) Expired(now time.Time) bool {
	return now.Sub(r.IssuedAt) > CodeTTL
}
