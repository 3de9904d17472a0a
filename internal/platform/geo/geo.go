package geo

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout es la espera máxima para obtener una posición.
const DefaultTimeout = 5 * time.Second

var (
	ErrUnavailable = errors.New("geolocation unavailable")
	ErrDenied      = errors.New("geolocation permission denied")
)

// Point es una coordenada. Se compara por igualdad exacta.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Fix es una lectura del dispositivo.
type Fix struct {
	Point
	Accuracy float64 `json:"accuracy,omitempty"`
}

// Locator obtiene la posición actual del dispositivo.
type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}

// LocatorFunc adapta una función a Locator.
type LocatorFunc func(ctx context.Context) (Fix, error)

func (f LocatorFunc) Locate(ctx context.Context) (Fix, error) { return f(ctx) }

// Static devuelve la lectura que el cliente ya obtuvo en el navegador.
// nil significa que el navegador no pudo (permiso denegado o timeout).
func Static(fix *Fix) Locator {
	return LocatorFunc(func(ctx context.Context) (Fix, error) {
		if fix == nil {
			return Fix{}, ErrUnavailable
		}
		return *fix, nil
	})
}

// Acquire pide la posición con límite de tiempo.
// Nunca falla: sin permiso, con error o pasado el timeout devuelve nil
// y el flujo sigue sin ubicación.
func Acquire(ctx context.Context, loc Locator, timeout time.Duration) *Fix {
	if loc == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		fix Fix
		err error
	}
	ch := make(chan result, 1)
	go func() {
		f, err := loc.Locate(ctx)
		ch <- result{fix: f, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil
	case r := <-ch:
		if r.err != nil || !r.fix.Valid() {
			return nil
		}
		fix := r.fix
		return &fix
	}
}

// Valid descarta coordenadas fuera de rango.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Equal compara por valor exacto (sin tolerancia).
func Equal(a, b *Point) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Lat == b.Lat && a.Lng == b.Lng
}
