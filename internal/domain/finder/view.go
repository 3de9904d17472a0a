// Package finder arma lo que ve quien escanea la etiqueta sin loguearse.
package finder

import (
	"strings"
	"time"

	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/geo"
)

type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Emergency struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Lost struct {
	Since            *time.Time `json:"since,omitempty"`
	LastSeenLocation *geo.Point `json:"last_seen_location,omitempty"`
	Message          string     `json:"message,omitempty"`
}

// View solo lleva campos públicos. Un string vacío no se muestra.
type View struct {
	TagCode       string `json:"tag_code"`
	Name          string `json:"name,omitempty"`
	Type          string `json:"type,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	Features      string `json:"features,omitempty"`
	SizeInfo      string `json:"size_info,omitempty"`
	Temperament   string `json:"temperament,omitempty"`
	HealthWarning string `json:"health_warning,omitempty"`
	VetInfo       string `json:"vet_info,omitempty"`

	Lost *Lost `json:"lost,omitempty"`

	OwnerName string     `json:"owner_name,omitempty"`
	Contact   Contact    `json:"contact"`
	Emergency *Emergency `json:"emergency,omitempty"`
}

// Project es una proyección pura: sin owner no hay contacto.
func Project(p pets.Pet, owner *users.User) View {
	v := View{
		TagCode:       p.OwnerUsername,
		Name:          public(p.Name),
		PhotoURL:      public(p.PhotoURL),
		Features:      public(p.Features),
		SizeInfo:      public(p.SizeInfo),
		Temperament:   public(p.Temperament),
		HealthWarning: public(p.HealthWarning),
		VetInfo:       public(p.VetInfo),
		Type:          p.Type.Label(),
	}

	if ls := p.LostStatus; ls.IsActive {
		v.Lost = &Lost{Since: ls.LostDate, LastSeenLocation: ls.LastSeenLocation, Message: ls.Message}
	}

	if owner == nil {
		return v
	}
	v.OwnerName = owner.FullName
	v.Contact = ContactFor(*owner)
	v.Emergency = emergencyFor(owner.EmergencyContact)
	return v
}

// ContactFor aplica la regla de contacto: el teléfono según preferencia;
// el email según preferencia o como respaldo si no hay teléfono visible.
func ContactFor(u users.User) Contact {
	phone := strings.TrimSpace(u.Phone)
	email := strings.TrimSpace(u.Email)

	showPhone := (u.ContactPreference == users.ContactPhone || u.ContactPreference == users.ContactBoth) && phone != ""
	showEmail := email != "" && (u.ContactPreference == users.ContactEmail || u.ContactPreference == users.ContactBoth || !showPhone)

	var c Contact
	if showPhone {
		c.Phone = phone
	}
	if showEmail {
		c.Email = email
	}
	return c
}

func emergencyFor(e users.EmergencyContact) *Emergency {
	name := strings.TrimSpace(e.Name)
	phone := strings.TrimSpace(e.Phone)
	email := strings.TrimSpace(e.Email)
	if name == "" || (phone == "" && email == "") {
		return nil
	}
	return &Emergency{Name: name, Phone: phone, Email: email}
}

func public(f pets.Field[string]) string {
	if !f.IsPublic {
		return ""
	}
	return strings.TrimSpace(f.Value)
}
