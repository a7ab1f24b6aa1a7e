// Package token issues and validates the bearer tokens presented on every
// protected request. Tokens are self-contained HS256 JWTs: validity is
// decided by signature and payload alone, with no server-side session state.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed      = errors.New("malformed token")
	ErrMissingSubject = errors.New("token missing subject")
)

// Claims is the payload carried by a token. Subject is the canonical phone
// for users and the username for admins.
type Claims struct {
	Subject string
	Admin   bool
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs the claims into a compact token string. No expiry claim is
// added; tokens live until the signing secret rotates.
func (i *Issuer) Issue(c Claims) (string, error) {
	mc := jwt.MapClaims{"sub": c.Subject}
	if c.Admin {
		mc["adm"] = true
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(i.secret)
}

// Validate parses and verifies a token string. It is pure: resolving the
// subject to a live identity is the caller's job.
func (i *Issuer) Validate(raw string) (Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return Claims{}, ErrMalformed
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, ErrMissingSubject
	}

	adm, _ := mc["adm"].(bool)
	return Claims{Subject: sub, Admin: adm}, nil
}
