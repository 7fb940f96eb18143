// Package auth verifies the session token carried on the authorization header
// and produces the verified caller identity spec.md §1/§4.D treat as a boundary:
// "the core requires that a verified caller identity is attached to each
// request."
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken covers every rejection the verifier can produce: missing
// header, bad signature, malformed claims, or expiry — spec.md §6 treats these
// uniformly as Unauthenticated.
var ErrInvalidToken = errors.New("auth: invalid or expired session token")

// SessionClaims mirrors the upstream envelope (original_source's
// rpc/server/auth.rs SessionClaims): user_id and expires_at are load-bearing
// for this core; token_id/username/vars are carried through for a real issuer
// but unused here.
type SessionClaims struct {
	TokenID  string            `json:"token_id"`
	UserID   string            `json:"user_id"`
	Username string            `json:"username"`
	Vars     map[string]string `json:"vars,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks an HS256-signed session token and extracts the user id.
type Verifier struct {
	key []byte
}

// NewVerifier builds a Verifier around the shared signing key.
func NewVerifier(key []byte) *Verifier {
	return &Verifier{key: key}
}

// Verify parses token, checks its signature and expiry, and returns the
// verified user_id claim.
func (v *Verifier) Verify(token string) (userID string, err error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
		}
		return v.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
