package events

import (
	"context"
	"time"
)

// Publisher publica eventos de dominio. Un fallo nunca debe bloquear el
// flujo principal: los servicios lo loguean y siguen.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
}

const (
	TagScanned       = "tag.scanned"
	OwnerRegistered  = "owner.registered"
	PetLostActivated = "pet.lost.activated"
	PetLostCleared   = "pet.lost.cleared"
)

type TagScannedEvent struct {
	TagCode     string    `json:"tag_code"`
	ScannedAt   time.Time `json:"scanned_at"`
	HasLocation bool      `json:"has_location"`
}

type OwnerRegisteredEvent struct {
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registered_at"`
}

type PetLostEvent struct {
	PetID    string     `json:"pet_id"`
	Owner    string     `json:"owner"`
	LostDate *time.Time `json:"lost_date,omitempty"`
	At       time.Time  `json:"at"`
}

// Nop descarta todo.
type Nop struct{}

func (Nop) Publish(ctx context.Context, subject string, data any) error { return nil }
