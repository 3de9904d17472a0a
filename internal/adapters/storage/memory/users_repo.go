package memory

import (
	"context"
	"time"

	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
)

type userRepo struct {
	db *DB
}

func NewUserRepo(db *DB) users.Repository {
	return &userRepo{db: db}
}

// Register pisa un usuario huérfano si lo hubiera: la etiqueta EMPTY manda.
func (r *userRepo) Register(ctx context.Context, u users.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.tags[u.Username]
	if !ok {
		return tags.ErrNotFound
	}
	if t.Status != tags.StatusEmpty {
		return users.ErrTagNotEmpty
	}

	r.db.users[u.Username] = u
	t.Status = tags.StatusAssigned
	t.UpdatedAt = u.CreatedAt
	r.db.tags[u.Username] = t
	return nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.users[u.Username]
	if !ok {
		return users.ErrNotFound
	}
	// La credencial solo cambia por UpdatePassword.
	u.PasswordHash = current.PasswordHash
	u.CreatedAt = current.CreatedAt
	r.db.users[u.Username] = u
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[username]
	if !ok {
		return users.ErrNotFound
	}
	t, ok := r.db.tags[username]
	if !ok {
		return tags.ErrNotFound
	}

	now := time.Now().UTC()
	u.PasswordHash = hash
	u.UpdatedAt = now
	t.PINHash = hash
	t.UpdatedAt = now

	r.db.users[username] = u
	r.db.tags[username] = t
	return nil
}
