package pets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"pet-qr-tags/internal/platform/apperr"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrInconsistentLostStatus: estado seguro con datos de pérdida colgando.
	ErrInconsistentLostStatus = errors.New("inactive lost status must be fully cleared")
)

type Service struct {
	repo  Repository
	blobs BlobStore
	now   func() time.Time
}

func NewService(repo Repository, blobs BlobStore) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		now:   time.Now,
	}
}

// Input es el formulario de la mascota.
type Input struct {
	Name          Field[string]
	Type          string
	CustomType    string
	PhotoURL      Field[string]
	Features      Field[string]
	SizeInfo      Field[string]
	Temperament   Field[string]
	HealthWarning Field[string]
	VetInfo       Field[string]
	Microchip     string
}

// MissingFields devuelve los campos obligatorios vacíos.
func MissingFields(in Input) []string {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(in.Name.Value) == "" {
		missing = append(missing, "petName")
	}
	if strings.TrimSpace(in.PhotoURL.Value) == "" {
		missing = append(missing, "photo")
	}
	if strings.EqualFold(strings.TrimSpace(in.Type), string(SpeciesOther)) && strings.TrimSpace(in.CustomType) == "" {
		missing = append(missing, "customPetType")
	}
	return missing
}

func Validate(in Input) error {
	if missing := MissingFields(in); len(missing) > 0 {
		return apperr.Required(missing...)
	}
	if _, err := ParseKind(in.Type, in.CustomType); err != nil {
		return apperr.Validation("type", "Lütfen türü belirtin")
	}
	return nil
}

func (s *Service) GetByOwner(ctx context.Context, ownerUsername string) (Pet, error) {
	p, err := s.repo.GetByOwner(ctx, strings.TrimSpace(ownerUsername))
	if err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// Save crea la mascota del dueño o actualiza la existente.
// El estado de pérdida no se toca desde el formulario.
func (s *Service) Save(ctx context.Context, ownerUsername string, in Input) (Pet, error) {
	ownerUsername = strings.TrimSpace(ownerUsername)
	if ownerUsername == "" {
		return Pet{}, ErrInvalidInput
	}
	if err := Validate(in); err != nil {
		return Pet{}, err
	}
	kind, _ := ParseKind(in.Type, in.CustomType)

	now := s.now()
	current, err := s.repo.GetByOwner(ctx, ownerUsername)
	switch {
	case errors.Is(err, ErrNotFound):
		p := Pet{
			ID:            uuid.NewString(),
			OwnerUsername: ownerUsername,
			CreatedAt:     now,
		}
		p = apply(p, in, kind)
		p.UpdatedAt = now
		if err := s.repo.Create(ctx, p); err != nil {
			return Pet{}, apperr.Store(err)
		}
		return p, nil
	case err != nil:
		return Pet{}, apperr.Store(err)
	}

	p := apply(current, in, kind)
	p.UpdatedAt = now
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, apperr.Store(err)
	}
	return p, nil
}

// Update edita la mascota existente; sin mascota no hay nada que editar.
func (s *Service) Update(ctx context.Context, ownerUsername string, in Input) (Pet, error) {
	if _, err := s.repo.GetByOwner(ctx, strings.TrimSpace(ownerUsername)); errors.Is(err, ErrNotFound) {
		return Pet{}, apperr.NotAllowed("Önce hayvan kaydı yapmalısınız.")
	} else if err != nil {
		return Pet{}, apperr.Store(err)
	}
	return s.Save(ctx, ownerUsername, in)
}

func apply(p Pet, in Input, kind Kind) Pet {
	trim := func(f Field[string]) Field[string] {
		f.Value = strings.TrimSpace(f.Value)
		return f
	}
	p.Name = trim(in.Name)
	p.Type = kind
	p.PhotoURL = trim(in.PhotoURL)
	p.Features = trim(in.Features)
	p.SizeInfo = trim(in.SizeInfo)
	p.Temperament = trim(in.Temperament)
	p.HealthWarning = trim(in.HealthWarning)
	p.VetInfo = trim(in.VetInfo)
	p.Microchip = strings.TrimSpace(in.Microchip)
	return p
}

// SetLostStatus persiste el estado de pérdida completo.
// Rechaza un estado seguro que no esté totalmente limpio.
func (s *Service) SetLostStatus(ctx context.Context, petID string, status LostStatus) (Pet, error) {
	if !status.Consistent() {
		return Pet{}, ErrInconsistentLostStatus
	}
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
	if errors.Is(err, ErrNotFound) {
		return Pet{}, apperr.ErrNotFound
	}
	if err != nil {
		return Pet{}, apperr.Store(err)
	}
	p.LostStatus = status
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, apperr.Store(err)
	}
	return p, nil
}

// UploadPhoto sube la foto y devuelve su URL pública.
// La clave es "<unix millis>_<aleatorio>.<ext>".
func (s *Service) UploadPhoto(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if s.blobs == nil {
		return "", apperr.NotAllowed("Fotoğraf yükleme kullanılamıyor.")
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", apperr.Validation("photo", "Lütfen bir fotoğraf seçiniz.")
	}
	key := PhotoKey(s.now(), filename)
	url, err := s.blobs.Put(ctx, key, contentType, body)
	if err != nil {
		return "", apperr.Store(fmt.Errorf("upload %s: %w", key, err))
	}
	return url, nil
}

func PhotoKey(now time.Time, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "jpg"
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("%d_%s.%s", now.UnixMilli(), random, ext)
}
