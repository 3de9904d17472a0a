// Package authgate cambia código de etiqueta + PIN por un usuario.
//
// El PIN y la contraseña de la cuenta son la misma credencial: el hash de
// la etiqueta se copia al usuario al registrarse y los cambios de
// contraseña actualizan ambos en una transacción.
package authgate

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/credentials"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/ports/events"
)

type Result struct {
	User  users.User
	IsNew bool
}

type Gate struct {
	tags   tags.Repository
	users  users.Repository
	hasher credentials.Hasher
	events events.Publisher
	log    logger.Logger
	now    func() time.Time
}

type Deps struct {
	Tags   tags.Repository
	Users  users.Repository
	Hasher credentials.Hasher
	Events events.Publisher
	Log    logger.Logger
}

func New(d Deps) *Gate {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &Gate{
		tags:   d.Tags,
		users:  d.Users,
		hasher: d.Hasher,
		events: d.Events,
		log:    d.Log,
		now:    time.Now,
	}
}

// Authenticate no escribe nada salvo al reparar un enlace roto
// (etiqueta ASSIGNED sin usuario), que vuelve a EMPTY.
func (g *Gate) Authenticate(ctx context.Context, code, pin string) (Result, error) {
	code = strings.TrimSpace(code)
	if !tags.ValidCode(code) {
		return Result{}, apperr.ErrInvalidCode
	}

	tag, err := g.tags.GetByCode(ctx, code)
	if errors.Is(err, tags.ErrNotFound) {
		return Result{}, apperr.ErrInvalidCode
	}
	if err != nil {
		return Result{}, apperr.Store(err)
	}

	if !g.hasher.Compare(pin, tag.PINHash) {
		return Result{}, apperr.ErrInvalidPIN
	}

	if tag.Status == tags.StatusEmpty {
		return Result{User: users.Shell(code, tag.PINHash), IsNew: true}, nil
	}

	u, err := g.users.GetByUsername(ctx, code)
	if err == nil {
		return Result{User: u}, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return Result{}, apperr.Store(err)
	}

	g.log.Warn("stale tag link, resetting to EMPTY", map[string]any{
		"tag_code": code,
		"kind":     string(apperr.KindStaleLink),
	})
	if err := g.tags.SetStatus(ctx, code, tags.StatusEmpty); err != nil {
		return Result{}, apperr.Store(err)
	}
	return Result{User: users.Shell(code, tag.PINHash), IsNew: true}, nil
}

// CompleteRegistration inserta el usuario y marca la etiqueta ASSIGNED
// de forma atómica. Si ya estaba registrado devuelve el usuario guardado.
func (g *Gate) CompleteRegistration(ctx context.Context, u users.User) (users.User, error) {
	code := strings.TrimSpace(u.Username)
	tag, err := g.tags.GetByCode(ctx, code)
	if errors.Is(err, tags.ErrNotFound) {
		return users.User{}, apperr.ErrInvalidCode
	}
	if err != nil {
		return users.User{}, apperr.Store(err)
	}

	if tag.Status == tags.StatusAssigned {
		existing, err := g.users.GetByUsername(ctx, code)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, users.ErrNotFound) {
			return users.User{}, apperr.Store(err)
		}
		g.log.Warn("stale tag link on registration, resetting to EMPTY", map[string]any{
			"tag_code": code,
			"kind":     string(apperr.KindStaleLink),
		})
		if err := g.tags.SetStatus(ctx, code, tags.StatusEmpty); err != nil {
			return users.User{}, apperr.Store(err)
		}
	}

	now := g.now()
	u.Username = code
	// La credencial es siempre el hash de la etiqueta.
	u.PasswordHash = tag.PINHash
	if !u.ContactPreference.Valid() {
		u.ContactPreference = users.ContactPhone
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := g.users.Register(ctx, u); err != nil {
		if errors.Is(err, users.ErrTagNotEmpty) {
			return users.User{}, apperr.NotAllowed("Bu etiket zaten kayıtlı.")
		}
		return users.User{}, apperr.Store(err)
	}

	if err := g.events.Publish(ctx, events.OwnerRegistered, events.OwnerRegisteredEvent{
		Username:     code,
		RegisteredAt: now,
	}); err != nil {
		g.log.Warn("publish failed", map[string]any{"subject": events.OwnerRegistered, "tag_code": code, "error": err.Error()})
	}
	return u, nil
}
