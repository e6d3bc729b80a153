package jwtx

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrEmptySecret = errors.New("jwtx: empty secret")
)

const keyInfo = "rolesconsole service token v1"

// DeriveKey expands the shared secret into a 32 byte HMAC key so the raw
// secret from configuration is never used as the signing key directly.
func DeriveKey(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("jwtx: derive key: %w", err)
	}
	return key, nil
}

// HS256 signs and verifies service tokens with a key shared by both services.
type HS256 struct {
	key    []byte
	issuer string
	leeway time.Duration
}

// NewHS256 derives the signing key from secret. issuer is stamped on signed
// tokens and required on verified ones.
func NewHS256(secret, issuer string) (*HS256, error) {
	key, err := DeriveKey([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &HS256{key: key, issuer: issuer, leeway: 30 * time.Second}, nil
}

// Sign returns a compact JWS for c.
func (h *HS256) Sign(c Claims) (string, error) {
	if c.Issuer == "" {
		c.Issuer = h.issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.key)
}

// Mint signs a fresh token for subject with scopes.
func (h *HS256) Mint(subject string, scopes ...string) (string, error) {
	return h.Sign(NewServiceClaims(subject, h.issuer, scopes, DefaultServiceTokenTTL, time.Now()))
}

func (h *HS256) Verify(token string) (Claims, error) {
	var c Claims
	parsed, err := jwt.ParseWithClaims(token, &c,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrAlgMismatch
			}
			return h.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithLeeway(h.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return Claims{}, ErrIssuer
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrAlgMismatch
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	if !parsed.Valid {
		return Claims{}, ErrMalformed
	}
	return c, nil
}
