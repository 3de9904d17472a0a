// Package lostmode es el editor del estado de pérdida: un borrador en
// memoria (Safe ⇄ Lost) que solo llega al store al guardar.
package lostmode

import (
	"context"
	"strings"
	"time"

	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/geo"
)

// Centro por defecto del mapa (Ankara) cuando no hay ubicación.
var DefaultCenter = geo.Point{Lat: 39.9334, Lng: 32.8597}

const (
	ZoomCountry  = 6
	ZoomSaved    = 15
	ZoomSelected = 16
)

var (
	ErrMapLocked = apperr.NotAllowed("Konumu değiştirmek için haritanın kilidini açın.")
	ErrNotLost   = apperr.NotAllowed("Harita sadece kayıp modunda kullanılabilir.")
)

// Draft es la edición pendiente. Saved es la última versión persistida.
type Draft struct {
	PetID string          `json:"pet_id"`
	Saved pets.LostStatus `json:"saved"`

	Active   bool       `json:"active"`
	Message  string     `json:"message"`
	Location *geo.Point `json:"location,omitempty"`

	// MapInteractive arranca en false: el mapa está bloqueado.
	MapInteractive bool `json:"map_interactive"`
	// Moved indica que la ubicación cambió en esta edición.
	Moved bool `json:"moved"`

	PasswordError string `json:"password_error,omitempty"`
}

func NewDraft(p pets.Pet) *Draft {
	d := &Draft{PetID: p.ID}
	d.reset(p.LostStatus)
	return d
}

func (d *Draft) reset(saved pets.LostStatus) {
	d.Saved = saved
	d.Active = saved.IsActive
	d.Message = saved.Message
	d.Location = nil
	if saved.LastSeenLocation != nil {
		p := *saved.LastSeenLocation
		d.Location = &p
	}
	d.MapInteractive = false
	d.Moved = false
	d.PasswordError = ""
}

// Dirty compara contra lo persistido. Las coordenadas se comparan por
// valor exacto.
func (d *Draft) Dirty() bool {
	return d.Active != d.Saved.IsActive ||
		d.Message != d.Saved.Message ||
		!geo.Equal(d.Location, d.Saved.LastSeenLocation)
}

// Toggle cambia el switch. Al activar intenta obtener la ubicación sin
// bloquear: sin permiso o pasado el timeout se sigue sin ubicación.
func (d *Draft) Toggle(ctx context.Context, active bool, loc geo.Locator, timeout time.Duration) {
	d.Active = active
	d.PasswordError = ""
	if !active {
		d.MapInteractive = false
		return
	}
	if fix := geo.Acquire(ctx, loc, timeout); fix != nil {
		d.setLocation(fix.Point)
	}
}

func (d *Draft) SetMessage(msg string) {
	d.Message = msg
}

// Locate vuelve a pedir la ubicación actual. Devuelve false si no se obtuvo.
func (d *Draft) Locate(ctx context.Context, loc geo.Locator, timeout time.Duration) (bool, error) {
	if !d.Active {
		return false, ErrNotLost
	}
	fix := geo.Acquire(ctx, loc, timeout)
	if fix == nil {
		return false, nil
	}
	d.setLocation(fix.Point)
	return true, nil
}

func (d *Draft) UnlockMap() error {
	if !d.Active {
		return ErrNotLost
	}
	d.MapInteractive = true
	return nil
}

func (d *Draft) LockMap() {
	d.MapInteractive = false
}

// TapMap y DragMarker mueven el marcador solo con el mapa desbloqueado.
func (d *Draft) TapMap(p geo.Point) error {
	return d.moveTo(p)
}

func (d *Draft) DragMarker(p geo.Point) error {
	return d.moveTo(p)
}

func (d *Draft) moveTo(p geo.Point) error {
	if !d.Active {
		return ErrNotLost
	}
	if !d.MapInteractive {
		return ErrMapLocked
	}
	if !p.Valid() {
		return apperr.Validation("location", "Geçersiz konum.")
	}
	d.setLocation(p)
	return nil
}

func (d *Draft) setLocation(p geo.Point) {
	d.Location = &p
	d.Moved = true
}

// MapView es el contrato declarativo del widget de mapa.
type MapView struct {
	Visible     bool       `json:"visible"`
	Center      geo.Point  `json:"center"`
	Zoom        int        `json:"zoom"`
	Marker      *geo.Point `json:"marker,omitempty"`
	Interactive bool       `json:"interactive"`
}

func (d *Draft) Map() MapView {
	v := MapView{
		Visible:     d.Active,
		Center:      DefaultCenter,
		Zoom:        ZoomCountry,
		Interactive: d.Active && d.MapInteractive,
	}
	if d.Location == nil {
		return v
	}
	p := *d.Location
	v.Center = p
	v.Marker = &p
	v.Zoom = ZoomSaved
	if d.Moved {
		v.Zoom = ZoomSelected
	}
	return v
}

func trimmed(s string) string { return strings.TrimSpace(s) }
