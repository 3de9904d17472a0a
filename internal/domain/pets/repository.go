package pets

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("pet not found")

// Repository: una mascota por dueño.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	GetByOwner(ctx context.Context, ownerUsername string) (Pet, error)
}

// BlobStore guarda fotos y devuelve una URL pública.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
