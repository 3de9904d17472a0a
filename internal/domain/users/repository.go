package users

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrTagNotEmpty: Register sobre una etiqueta que ya no está EMPTY.
	ErrTagNotEmpty = errors.New("tag is not empty")
)

type Repository interface {
	// Register inserta (o repara) el usuario y pasa la etiqueta
	// EMPTY→ASSIGNED en una sola transacción.
	Register(ctx context.Context, u User) error
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, u User) error
	// UpdatePassword cambia la contraseña y el PIN de la etiqueta juntos.
	UpdatePassword(ctx context.Context, username, hash string) error
}

// CodeStore guarda códigos de verificación de email con vencimiento.
type CodeStore interface {
	SaveCode(ctx context.Context, username, code string, ttl time.Duration) error
	// ConsumeCode borra el código si coincide.
	ConsumeCode(ctx context.Context, username, code string) (bool, error)
}

// Mailer envía el código de verificación.
type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, toName, code string) error
}
