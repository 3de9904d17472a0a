package memory

import (
	"context"
	"errors"
	"strings"

	"pet-qr-tags/internal/domain/pets"
)

var ErrOwnerHasPet = errors.New("owner already has a pet")

type petRepo struct {
	db *DB
}

func NewPetRepo(db *DB) pets.Repository {
	return &petRepo{db: db}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.db.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	for _, other := range r.db.pets {
		if other.OwnerUsername == p.OwnerUsername {
			return ErrOwnerHasPet
		}
	}
	r.db.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.db.pets[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) GetByOwner(ctx context.Context, ownerUsername string) (pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, p := range r.db.pets {
		if p.OwnerUsername == ownerUsername {
			return p, nil
		}
	}
	return pets.Pet{}, pets.ErrNotFound
}
