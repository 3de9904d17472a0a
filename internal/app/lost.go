package app

import (
	"context"

	"pet-qr-tags/internal/domain/lostmode"
	"pet-qr-tags/internal/domain/navigation"
	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/platform/geo"
	"pet-qr-tags/internal/ports/auth"
)

// LostView es lo que pinta el editor de pérdida.
type LostView struct {
	Active        bool             `json:"active"`
	Message       string           `json:"message"`
	Location      *geo.Point       `json:"location,omitempty"`
	Saved         pets.LostStatus  `json:"saved"`
	Map           lostmode.MapView `json:"map"`
	Dirty         bool             `json:"dirty"`
	PasswordError string           `json:"password_error,omitempty"`
	State         navigation.State `json:"state"`
	Located       *bool            `json:"located,omitempty"`
}

func viewOf(sess Session) LostView {
	d := sess.Draft
	return LostView{
		Active:        d.Active,
		Message:       d.Message,
		Location:      d.Location,
		Saved:         d.Saved,
		Map:           d.Map(),
		Dirty:         d.Dirty(),
		PasswordError: d.PasswordError,
		State:         sess.Nav,
	}
}

// editDraft carga el borrador del editor, aplica fn y guarda la sesión
// aunque fn falle (el error de contraseña queda en el borrador). El flag
// de cambios sin guardar sigue siempre al borrador.
func (s *Service) editDraft(ctx context.Context, c auth.Claims, fn func(d *lostmode.Draft) error) (LostView, error) {
	sess, err := s.ownerSession(ctx, c)
	if err != nil {
		return LostView{}, err
	}
	if sess.Nav.Screen != navigation.ScreenLostModeEditor {
		return LostView{}, navigation.ErrNotHere
	}
	if sess.Draft == nil {
		pet, err := s.petOf(ctx, c.Username)
		if err != nil {
			return LostView{}, err
		}
		if pet == nil {
			return LostView{}, navigation.ErrNeedsPet
		}
		sess.Draft = lostmode.NewDraft(*pet)
	}

	fnErr := fn(sess.Draft)
	sess.Nav.Unsaved = sess.Draft.Dirty()
	if err := s.saveSession(ctx, c.DeviceID, sess); err != nil {
		return LostView{}, err
	}
	return viewOf(sess), fnErr
}

func (s *Service) LostDraft(ctx context.Context, c auth.Claims) (LostView, error) {
	return s.editDraft(ctx, c, func(*lostmode.Draft) error { return nil })
}

// ToggleLost cambia el switch. fix es la lectura del navegador (nil si no
// hubo permiso o se venció el tiempo).
func (s *Service) ToggleLost(ctx context.Context, c auth.Claims, active bool, fix *geo.Fix) (LostView, error) {
	return s.editDraft(ctx, c, func(d *lostmode.Draft) error {
		d.Toggle(ctx, active, geo.Static(fix), s.geoTimeout)
		return nil
	})
}

func (s *Service) SetLostMessage(ctx context.Context, c auth.Claims, msg string) (LostView, error) {
	return s.editDraft(ctx, c, func(d *lostmode.Draft) error {
		d.SetMessage(msg)
		return nil
	})
}

// LocateMe vuelve a centrar en la posición del dispositivo. Located=false
// indica que no se pudo obtener y el borrador no cambió.
func (s *Service) LocateMe(ctx context.Context, c auth.Claims, fix *geo.Fix) (LostView, error) {
	var located bool
	v, err := s.editDraft(ctx, c, func(d *lostmode.Draft) error {
		ok, err := d.Locate(ctx, geo.Static(fix), s.geoTimeout)
		located = ok
		return err
	})
	if err == nil {
		v.Located = &located
	}
	return v, err
}

func (s *Service) UnlockMap(ctx context.Context, c auth.Claims) (LostView, error) {
	return s.editDraft(ctx, c, func(d *lostmode.Draft) error { return d.UnlockMap() })
}

func (s *Service) LockMap(ctx context.Context, c auth.Claims) (LostView, error) {
	return s.editDraft(ctx, c, func(d *lostmode.Draft) error {
		d.LockMap()
		return nil
	})
}

func (s *Service) TapMap(ctx context.Context, c auth.Claims, p geo.Point) (LostView, error) {
	return s.editDraft(ctx, c, func(d *lostmode.Draft) error { return d.TapMap(p) })
}

func (s *Service) DragMarker(ctx context.Context, c auth.Claims, p geo.Point) (LostView, error) {
	return s.editDraft(ctx, c, func(d *lostmode.Draft) error { return d.DragMarker(p) })
}

// SaveLost persiste el borrador. La contraseña solo se pide al pasar de
// Lost a Safe.
func (s *Service) SaveLost(ctx context.Context, c auth.Claims, password string) (LostView, error) {
	return s.editDraft(ctx, c, func(d *lostmode.Draft) error {
		_, err := s.lost.Save(ctx, c.Username, d, password)
		return err
	})
}
