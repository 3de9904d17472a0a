package tags

import (
	"regexp"
	"time"
)

// Status del registro QR.
// @Enum EMPTY, ASSIGNED
type Status string

const (
	StatusEmpty    Status = "EMPTY"
	StatusAssigned Status = "ASSIGNED"
)

// Tag es la etiqueta física. ShortCode es también el username del dueño.
type Tag struct {
	ShortCode string
	PINHash   string
	Status    Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Classification es lo que la app sabe de un código escaneado.
type Classification string

const (
	ClassInvalid    Classification = "INVALID"
	ClassNew        Classification = "NEW"
	ClassRegistered Classification = "REGISTERED"
	ClassLost       Classification = "LOST"
)

// Mensajes que ve el usuario en la pantalla de login.
const (
	MessageInvalid    = "Geçersiz veya Tanımsız QR Kod."
	MessageNew        = "Yeni etiket! Kayıt oluşturmak için paketten çıkan PIN kodunu giriniz."
	MessageRegistered = "Kayıtlı etiket. Yönetim paneli için PIN kodunu giriniz."
)

func (c Classification) Message() string {
	switch c {
	case ClassNew:
		return MessageNew
	case ClassRegistered:
		return MessageRegistered
	case ClassLost:
		return ""
	default:
		return MessageInvalid
	}
}

var (
	codeRx = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	pathRx = regexp.MustCompile(`/qr/([a-zA-Z0-9]+)`)
)

// ValidCode: solo alfanumérico.
func ValidCode(code string) bool {
	return codeRx.MatchString(code)
}

// ParsePath extrae el código de un path "/qr/<code>".
// Sin match no hay contexto de etiqueta.
func ParsePath(path string) (string, bool) {
	m := pathRx.FindStringSubmatch(path)
	if len(m) != 2 {
		return "", false
	}
	return m[1], true
}
