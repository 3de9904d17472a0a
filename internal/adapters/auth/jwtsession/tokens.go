package jwtsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-qr-tags/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const audience = "pet-qr-tags"

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("invalid token")
)

type claims struct {
	Device string `json:"dev"`
	jwt.RegisteredClaims
}

// Tokens implementa auth.Issuer y auth.AuthVerifier con HS256.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(c auth.Claims) (string, time.Time, error) {
	if strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.DeviceID) == "" {
		return "", time.Time{}, errors.New("username and device id required")
	}

	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Device: c.DeviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			Audience:  []string{audience},
		},
	})
	signed, err := tok.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (t *Tokens) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("verify token: %w", err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || strings.TrimSpace(c.Subject) == "" {
		return auth.Claims{}, ErrTokenInvalid
	}
	return auth.Claims{Username: c.Subject, DeviceID: c.Device}, nil
}
