package domain

import "strings"

// NormalizePhone canonicalizes arbitrary phone input into the +7XXXXXXXXXX
// form used as the account key everywhere in the system:
//
//   - every non-digit character is stripped;
//   - a leading trunk prefix 8 is replaced with the country code 7;
//   - a missing country code 7 is prepended;
//   - the result is prefixed with "+".
//
// The function is pure and idempotent. It never fails: input with no digits
// at all still coerces to "+7", so callers must validate phone shape at the
// boundary before trusting the result as a real number.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.HasPrefix(digits, "8") {
		digits = "7" + digits[1:]
	}
	if !strings.HasPrefix(digits, "7") {
		digits = "7" + digits
	}
	return "+" + digits
}
