package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultServiceTokenTTL is how long a console minted token stays valid.
// Tokens are minted per request so this only needs to cover clock skew and
// slow requests.
const DefaultServiceTokenTTL = 2 * time.Minute

// DefaultIssuer is the iss claim both services agree on unless configured.
const DefaultIssuer = "rolesconsole"

// Claims carried by service tokens between the console and the directory.
type Claims struct {
	jwt.RegisteredClaims

	// Scopes granted to the caller, e.g. "directory:read".
	Scopes []string `json:"scopes,omitempty"`
}

// NewServiceClaims builds claims for subject valid from now for ttl.
func NewServiceClaims(subject, issuer string, scopes []string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Scopes: scopes,
	}
}

// HasScope reports whether the claims grant scope.
func (c Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

func newJTI() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
