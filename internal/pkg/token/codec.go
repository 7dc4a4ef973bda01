// Package token issues and verifies the signed identity tokens shared by the
// auth and event services. Both sides only need the same secret; there is no
// session store.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/core/domain"
)

// Header is the request header carrying the token.
const Header = "x-auth-token"

var (
	// ErrMissingToken is returned when no token was supplied.
	ErrMissingToken = domain.Unauthorized("token-not-provided")
	// ErrInvalidToken covers bad signatures, malformed or expired tokens and
	// tokens with an empty payload.
	ErrInvalidToken = domain.Unauthorized("invalid-token")
	// ErrNoSecret means the service was started without a signing secret.
	ErrNoSecret = domain.Internal("jwt-key-not-found")
)

// Claims is the signed payload.
type Claims struct {
	UserID  int64       `json:"userId"`
	Role    domain.Role `json:"role"`
	Name    string      `json:"name"`
	Surname string      `json:"surname"`
	jwt.RegisteredClaims
}

// Codec signs with HS256 using a shared secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// Issue signs p with an expiry of now+ttl.
func (c *Codec) Issue(p domain.Principal, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSecret
	}

	now := c.now()
	claims := Claims{
		UserID:  p.UserID,
		Role:    p.Role,
		Name:    p.Name,
		Surname: p.Surname,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns its principal.
// Expiry is enforced by the jwt parser only.
func (c *Codec) Verify(raw string) (domain.Principal, error) {
	if raw == "" {
		return domain.Principal{}, ErrMissingToken
	}
	if len(c.secret) == 0 {
		return domain.Principal{}, ErrNoSecret
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	p := claims.principal()
	if p == (domain.Principal{}) {
		return domain.Principal{}, fmt.Errorf("%w: empty payload", ErrInvalidToken)
	}
	return p, nil
}

// Peek decodes raw without checking the signature and returns the principal
// and expiry it carries. It is for clients holding a token but not the
// secret; never authorize on its result.
func Peek(raw string) (domain.Principal, time.Time, error) {
	if raw == "" {
		return domain.Principal{}, time.Time{}, ErrMissingToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return domain.Principal{}, time.Time{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return claims.principal(), exp, nil
}

func (c *Claims) principal() domain.Principal {
	return domain.Principal{
		UserID:  c.UserID,
		Role:    c.Role,
		Name:    c.Name,
		Surname: c.Surname,
	}
}
