// Package apperr define la taxonomía de errores que ve el usuario.
// Cada error lleva un Kind estable (para HTTP y tests) y un mensaje en turco
// listo para mostrar en pantalla.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidCode      Kind = "INVALID_CODE"
	KindInvalidPIN       Kind = "INVALID_PIN"
	KindStaleLink        Kind = "STALE_LINK"
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
	KindValidation       Kind = "VALIDATION"
	KindPasswordMismatch Kind = "PASSWORD_MISMATCH"
	KindNotAllowed       Kind = "NOT_ALLOWED"
	KindCancelled        Kind = "CANCELLED"
	KindNotFound         Kind = "NOT_FOUND"
	KindUnauthorized     Kind = "UNAUTHORIZED"
)

type Error struct {
	Kind    Kind
	Message string
	// Field identifica el input con error (validación inline); puede ir vacío.
	Field string
	// Fields lista todos los campos faltantes de un formulario.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind, así errors.Is(err, apperr.ErrInvalidPIN) funciona
// aunque el mensaje o el campo cambien.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidCode      = &Error{Kind: KindInvalidCode, Message: "Geçersiz QR Kod"}
	ErrInvalidPIN       = &Error{Kind: KindInvalidPIN, Message: "Hatalı PIN Kodu"}
	ErrStaleLink        = &Error{Kind: KindStaleLink, Message: "Bu QR koda bağlı kullanıcı profili bulunamadı."}
	ErrStoreUnavailable = &Error{Kind: KindStoreUnavailable, Message: "Sunucu hatası"}
	ErrValidation       = &Error{Kind: KindValidation, Message: "Lütfen zorunlu alanları doldurunuz."}
	ErrPasswordMismatch = &Error{Kind: KindPasswordMismatch, Message: "Şifre hatalı."}
	ErrNotAllowed       = &Error{Kind: KindNotAllowed, Message: "Bu işlem şu anda yapılamaz."}
	ErrCancelled        = &Error{Kind: KindCancelled, Message: "İşlem iptal edildi."}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "Kayıt bulunamadı."}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Message: "Oturum bulunamadı."}
)

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

// Required marca campos obligatorios vacíos; Field es el primero.
func Required(fields ...string) *Error {
	e := &Error{Kind: KindValidation, Message: "Lütfen zorunlu alanları (kırmızı ile işaretli) doldurun.", Fields: fields}
	if len(fields) > 0 {
		e.Field = fields[0]
	}
	return e
}

func PasswordMismatch(field, msg string) *Error {
	return &Error{Kind: KindPasswordMismatch, Field: field, Message: msg}
}

func NotAllowed(msg string) *Error {
	return &Error{Kind: KindNotAllowed, Message: msg}
}

// Store envuelve un fallo del Profile Store. El mensaje al usuario es fijo.
func Store(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: ErrStoreUnavailable.Message, Err: err}
}

// KindOf devuelve el Kind de err, o "" si no es un *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// As es un atajo de errors.As para *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
