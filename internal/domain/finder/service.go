package finder

import (
	"context"
	"errors"
	"strings"

	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

type PetSource interface {
	GetByOwner(ctx context.Context, ownerUsername string) (pets.Pet, error)
}

type OwnerSource interface {
	GetByUsername(ctx context.Context, username string) (users.User, error)
}

type Service struct {
	pets   PetSource
	owners OwnerSource
	log    logger.Logger
}

func NewService(petSrc PetSource, owners OwnerSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{pets: petSrc, owners: owners, log: log}
}

// Load trae mascota y dueño en paralelo. Sin dueño la vista sale igual,
// sin contacto. Solo hay vista pública mientras la mascota está perdida.
func (s *Service) Load(ctx context.Context, code string) (View, error) {
	code = strings.TrimSpace(code)
	if !tags.ValidCode(code) {
		return View{}, apperr.ErrInvalidCode
	}

	var (
		pet   pets.Pet
		owner *users.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.pets.GetByOwner(gctx, code)
		if err != nil {
			return err
		}
		pet = p
		return nil
	})
	g.Go(func() error {
		u, err := s.owners.GetByUsername(gctx, code)
		if err != nil {
			if !errors.Is(err, users.ErrNotFound) && !errors.Is(err, context.Canceled) {
				s.log.Warn("finder owner lookup failed", map[string]any{"tag_code": code, "error": err.Error()})
			}
			return nil
		}
		owner = &u
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return View{}, apperr.ErrNotFound
		}
		return View{}, apperr.Store(err)
	}
	if !pet.LostStatus.IsActive {
		return View{}, apperr.ErrNotFound
	}
	return Project(pet, owner), nil
}
