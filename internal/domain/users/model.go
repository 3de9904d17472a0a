package users

import "time"

// ContactPreference define qué contacto ve quien encuentra la mascota.
// @Enum EMAIL, PHONE, BOTH
type ContactPreference string

const (
	ContactEmail ContactPreference = "EMAIL"
	ContactPhone ContactPreference = "PHONE"
	ContactBoth  ContactPreference = "BOTH"
)

func (c ContactPreference) Valid() bool {
	switch c {
	case ContactEmail, ContactPhone, ContactBoth:
		return true
	default:
		return false
	}
}

type EmergencyContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// User es el dueño. Username es el código de la etiqueta.
// PasswordHash es el mismo hash que el PIN de la etiqueta.
type User struct {
	Username          string            `json:"username"`
	PasswordHash      string            `json:"-"`
	FullName          string            `json:"full_name"`
	Email             string            `json:"email"`
	IsEmailVerified   bool              `json:"is_email_verified"`
	Phone             string            `json:"phone"`
	ContactPreference ContactPreference `json:"contact_preference"`
	EmergencyContact  EmergencyContact  `json:"emergency_contact"`
	City              string            `json:"city"`
	District          string            `json:"district"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Shell es el usuario transitorio de una etiqueta nueva: solo username
// y credencial, nada persistido todavía.
func Shell(code, pinHash string) User {
	return User{
		Username:          code,
		PasswordHash:      pinHash,
		ContactPreference: ContactPhone,
	}
}
