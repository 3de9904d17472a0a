package pets

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pet-qr-tags/internal/platform/geo"
)

// Species define los tipos estándar.
// @Enum DOG, CAT, OTHER
type Species string

const (
	SpeciesDog   Species = "DOG"
	SpeciesCat   Species = "CAT"
	SpeciesOther Species = "OTHER"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	default:
		return false
	}
}

// Kind es el tipo de la mascota: uno estándar o un texto libre.
// Custom solo tiene valor cuando Standard es OTHER.
type Kind struct {
	Standard Species
	Custom   string
}

func StandardKind(s Species) Kind { return Kind{Standard: s} }

func CustomKind(label string) Kind {
	return Kind{Standard: SpeciesOther, Custom: strings.TrimSpace(label)}
}

func (k Kind) IsCustom() bool { return k.Standard == SpeciesOther }

// Label es lo que ve quien encuentra la mascota.
func (k Kind) Label() string {
	if k.IsCustom() {
		return k.Custom
	}
	return string(k.Standard)
}

type kindJSON struct {
	Type  Species `json:"type"`
	Label string  `json:"label,omitempty"`
}

func (k Kind) MarshalJSON() ([]byte, error) {
	out := kindJSON{Type: k.Standard}
	if k.IsCustom() {
		out.Label = k.Custom
	}
	return json.Marshal(out)
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var in kindJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	parsed, err := ParseKind(string(in.Type), in.Label)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind valida el par (tipo, etiqueta). Un tipo desconocido se trata
// como texto libre, igual que los registros viejos que guardaban "Kuş".
func ParseKind(typ, label string) (Kind, error) {
	typ = strings.ToUpper(strings.TrimSpace(typ))
	switch Species(typ) {
	case SpeciesDog, SpeciesCat:
		return StandardKind(Species(typ)), nil
	case SpeciesOther:
		return CustomKind(label), nil
	case "":
		return Kind{}, fmt.Errorf("pet type required")
	default:
		return CustomKind(typ), nil
	}
}

// Field es un valor con su flag de visibilidad pública.
type Field[T any] struct {
	Value    T    `json:"value"`
	IsPublic bool `json:"is_public"`
}

// LostStatus va embebido en Pet.
// Inactivo implica fecha, ubicación y mensaje vacíos.
type LostStatus struct {
	IsActive         bool       `json:"is_active"`
	LostDate         *time.Time `json:"lost_date,omitempty"`
	LastSeenLocation *geo.Point `json:"last_seen_location,omitempty"`
	Message          string     `json:"message"`
}

// Consistent verifica que un estado seguro no arrastre datos viejos.
func (l LostStatus) Consistent() bool {
	if l.IsActive {
		return true
	}
	return l.LostDate == nil && l.LastSeenLocation == nil && l.Message == ""
}

// Activate conserva la fecha original si ya existía.
func (l LostStatus) Activate(now time.Time, loc *geo.Point, message string) LostStatus {
	date := l.LostDate
	if date == nil {
		t := now
		date = &t
	}
	var p *geo.Point
	if loc != nil {
		c := *loc
		p = &c
	}
	return LostStatus{
		IsActive:         true,
		LostDate:         date,
		LastSeenLocation: p,
		Message:          strings.TrimSpace(message),
	}
}

// Safe es el estado seguro: todo limpio a la vez.
func Safe() LostStatus { return LostStatus{} }

type Pet struct {
	ID            string
	OwnerUsername string

	Name          Field[string]
	Type          Kind
	PhotoURL      Field[string]
	Features      Field[string]
	SizeInfo      Field[string]
	Temperament   Field[string]
	HealthWarning Field[string]
	VetInfo       Field[string]
	Microchip     string

	LostStatus LostStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
