package lostmode

import (
	"context"
	"time"

	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/ports/events"
)

const wrongPasswordMessage = "Şifre hatalı. Kayıp durumunu kapatmak için giriş şifrenizi girmelisiniz."

// PasswordVerifier compara contra la contraseña actual del store.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, username, password string) (bool, error)
}

// PetStore es lo que el editor necesita de pets.Service.
type PetStore interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	SetLostStatus(ctx context.Context, petID string, status pets.LostStatus) (pets.Pet, error)
}

type Service struct {
	pets      PetStore
	passwords PasswordVerifier
	events    events.Publisher
	log       logger.Logger
	now       func() time.Time
}

func NewService(petStore PetStore, passwords PasswordVerifier, pub events.Publisher, log logger.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets:      petStore,
		passwords: passwords,
		events:    pub,
		log:       log,
		now:       time.Now,
	}
}

// Save persiste el borrador.
//   - Lost: exige nota; conserva lostDate si ya existía.
//   - Lost→Safe: exige la contraseña actual y limpia todo junto.
//
// Con contraseña incorrecta el borrador queda sucio y con el error de campo.
func (s *Service) Save(ctx context.Context, owner string, d *Draft, password string) (pets.Pet, error) {
	d.PasswordError = ""

	if d.Active {
		if trimmed(d.Message) == "" {
			return pets.Pet{}, apperr.Validation("message", "Lütfen bulan kişi için bir not yazınız.")
		}
		status := d.Saved.Activate(s.now(), d.Location, d.Message)
		p, err := s.pets.SetLostStatus(ctx, d.PetID, status)
		if err != nil {
			return pets.Pet{}, err
		}
		d.reset(p.LostStatus)
		s.publish(ctx, events.PetLostActivated, p)
		return p, nil
	}

	if !d.Saved.IsActive {
		// Ya estaba a salvo: solo se descartan restos del borrador.
		p, err := s.pets.GetByID(ctx, d.PetID)
		if err != nil {
			return pets.Pet{}, apperr.Store(err)
		}
		d.reset(p.LostStatus)
		return p, nil
	}

	ok, err := s.passwords.VerifyPassword(ctx, owner, password)
	if err != nil {
		return pets.Pet{}, err
	}
	if !ok {
		d.PasswordError = wrongPasswordMessage
		return pets.Pet{}, apperr.PasswordMismatch("password", wrongPasswordMessage)
	}

	p, err := s.pets.SetLostStatus(ctx, d.PetID, pets.Safe())
	if err != nil {
		return pets.Pet{}, err
	}
	d.reset(p.LostStatus)
	s.publish(ctx, events.PetLostCleared, p)
	return p, nil
}

func (s *Service) publish(ctx context.Context, subject string, p pets.Pet) {
	err := s.events.Publish(ctx, subject, events.PetLostEvent{
		PetID:    p.ID,
		Owner:    p.OwnerUsername,
		LostDate: p.LostStatus.LostDate,
		At:       s.now(),
	})
	if err != nil {
		s.log.Warn("publish failed", map[string]any{"subject": subject, "tag_code": p.OwnerUsername, "error": err.Error()})
	}
}
