package app

import (
	"context"

	"pet-qr-tags/internal/domain/navigation"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/ports/auth"
)

// updateUser corre una escritura de perfil y deja la copia de la sesión
// igual al store. Un guardado exitoso desde Settings limpia el flag de
// cambios sin guardar.
func (s *Service) updateUser(ctx context.Context, c auth.Claims, fn func() (users.User, error)) (users.User, error) {
	sess, err := s.ownerSession(ctx, c)
	if err != nil {
		return users.User{}, err
	}
	u, err := fn()
	if err != nil {
		return users.User{}, err
	}
	sess.User = &u
	if sess.Nav.Screen == navigation.ScreenSettings {
		sess.Nav.Unsaved = false
	}
	if err := s.saveSession(ctx, c.DeviceID, sess); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, c auth.Claims, in users.ProfileInput) (users.User, error) {
	return s.updateUser(ctx, c, func() (users.User, error) {
		return s.users.UpdateProfile(ctx, c.Username, in)
	})
}

func (s *Service) SavePreferences(ctx context.Context, c auth.Claims, in users.PreferencesInput) (users.User, error) {
	return s.updateUser(ctx, c, func() (users.User, error) {
		return s.users.SavePreferences(ctx, c.Username, in)
	})
}

func (s *Service) SaveEmergencyContact(ctx context.Context, c auth.Claims, in users.EmergencyInput) (users.User, error) {
	return s.updateUser(ctx, c, func() (users.User, error) {
		return s.users.SaveEmergencyContact(ctx, c.Username, in)
	})
}

func (s *Service) VerifyEmail(ctx context.Context, c auth.Claims, code string) (users.User, error) {
	return s.updateUser(ctx, c, func() (users.User, error) {
		return s.users.VerifyEmail(ctx, c.Username, code)
	})
}

// ChangePassword cambia contraseña y PIN juntos. La sesión no guarda el
// hash, así que no hay nada que refrescar.
func (s *Service) ChangePassword(ctx context.Context, c auth.Claims, in users.PasswordInput) error {
	if _, err := s.ownerSession(ctx, c); err != nil {
		return err
	}
	return s.users.ChangePassword(ctx, c.Username, in)
}

func (s *Service) SendEmailVerification(ctx context.Context, c auth.Claims) error {
	if _, err := s.ownerSession(ctx, c); err != nil {
		return err
	}
	return s.users.SendEmailVerification(ctx, c.Username)
}
