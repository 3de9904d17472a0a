package tags

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-qr-tags/internal/platform/credentials"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("tag already exists")
)

// LostLookup responde si la mascota del dueño está en modo perdido.
// Dueño sin mascota: (false, nil).
type LostLookup interface {
	IsLost(ctx context.Context, ownerUsername string) (bool, error)
}

type Service struct {
	repo   Repository
	hasher credentials.Hasher
	now    func() time.Time
}

func NewService(repo Repository, hasher credentials.Hasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
	}
}

// Provision crea una etiqueta vacía con su PIN impreso.
func (s *Service) Provision(ctx context.Context, code, pin string) (Tag, error) {
	code = strings.TrimSpace(code)
	pin = strings.TrimSpace(pin)
	if !ValidCode(code) || pin == "" {
		return Tag{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByCode(ctx, code); err == nil {
		return Tag{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Tag{}, err
	}

	hash, err := s.hasher.Hash(pin)
	if err != nil {
		return Tag{}, err
	}

	now := s.now()
	t := Tag{
		ShortCode: code,
		PINHash:   hash,
		Status:    StatusEmpty,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Tag{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, code string) (Tag, error) {
	return s.repo.GetByCode(ctx, strings.TrimSpace(code))
}

// Resolution es el resultado de clasificar un código escaneado.
type Resolution struct {
	Code           string
	Classification Classification
	Message        string
}

// Resolver clasifica códigos. Nunca devuelve error: cualquier fallo de
// lookup termina en INVALID para que la UI siempre tenga un mensaje.
type Resolver struct {
	tags Repository
	pets LostLookup
}

func NewResolver(tags Repository, pets LostLookup) *Resolver {
	return &Resolver{tags: tags, pets: pets}
}

func (r *Resolver) Classify(ctx context.Context, code string) Resolution {
	code = strings.TrimSpace(code)
	res := Resolution{Code: code, Classification: ClassInvalid}

	if !ValidCode(code) {
		res.Message = res.Classification.Message()
		return res
	}

	t, err := r.tags.GetByCode(ctx, code)
	if err != nil {
		res.Message = res.Classification.Message()
		return res
	}

	switch t.Status {
	case StatusEmpty:
		res.Classification = ClassNew
	case StatusAssigned:
		res.Classification = ClassRegistered
		if r.pets != nil {
			lost, err := r.pets.IsLost(ctx, code)
			switch {
			case err != nil:
				res.Classification = ClassInvalid
			case lost:
				res.Classification = ClassLost
			}
		}
	}

	res.Message = res.Classification.Message()
	return res
}
