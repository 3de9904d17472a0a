package memory

import (
	"context"
	"time"

	"pet-qr-tags/internal/domain/tags"
)

type tagRepo struct {
	db *DB
}

func NewTagRepo(db *DB) tags.Repository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, t tags.Tag) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.tags[t.ShortCode]; exists {
		return tags.ErrAlreadyExists
	}
	r.db.tags[t.ShortCode] = t
	return nil
}

func (r *tagRepo) GetByCode(ctx context.Context, code string) (tags.Tag, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.tags[code]
	if !ok {
		return tags.Tag{}, tags.ErrNotFound
	}
	return t, nil
}

func (r *tagRepo) SetStatus(ctx context.Context, code string, status tags.Status) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.tags[code]
	if !ok {
		return tags.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	r.db.tags[code] = t
	return nil
}
