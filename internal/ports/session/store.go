package session

import (
	"context"
	"time"
)

// Store es el cache de sesión por dispositivo: un mapa clave→valor
// por device id, con las mismas claves que guardaba el navegador.
type Store interface {
	Get(ctx context.Context, deviceID string) (map[string]string, error)
	Set(ctx context.Context, deviceID string, values map[string]string) error
	Del(ctx context.Context, deviceID string, keys ...string) error
}

// DefaultTTL renueva la sesión en cada escritura.
const DefaultTTL = 30 * 24 * time.Hour
