package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-qr-tags/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey ctxKey = "claims"
	deviceKey ctxKey = "device"
)

// DeviceHeader identifica al navegador; la caché de sesión se indexa por él.
const DeviceHeader = "X-Device-ID"

// AuthContext:
// - Siempre setea el device id si viene X-Device-ID.
// - Si viene Bearer token válido => setea claims.
// - Un token emitido para otro dispositivo se ignora (sesión cruzada).
// - Si no hay claims, el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			device := strings.TrimSpace(r.Header.Get(DeviceHeader))
			if device != "" {
				ctx = context.WithValue(ctx, deviceKey, device)
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if verifier == nil || token == "" {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := verifier.Verify(ctx, token)
			if err != nil || claims.DeviceID != device {
				// No cortamos aquí para no acoplar. El handler decide 401.
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok && strings.TrimSpace(c.Username) != ""
}

func GetDeviceID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(deviceKey).(string)
	return v, ok && v != ""
}

// WithClaims es para tests y para handlers que acaban de autenticar.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
