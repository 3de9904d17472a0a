package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Issuer emite el token de sesión tras un login correcto.
type Issuer interface {
	Issue(claims Claims) (token string, expiresAt time.Time, err error)
}
