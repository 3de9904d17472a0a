package memory

import (
	"sync"

	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
)

// DB es el Profile Store en memoria. Todos los repos comparten el mismo
// lock, así registro y cambio de contraseña son atómicos como en Postgres.
type DB struct {
	mu    sync.RWMutex
	tags  map[string]tags.Tag
	users map[string]users.User
	pets  map[string]pets.Pet
	scans []scans.Entry
}

func NewDB() *DB {
	return &DB{
		tags:  make(map[string]tags.Tag),
		users: make(map[string]users.User),
		pets:  make(map[string]pets.Pet),
	}
}
