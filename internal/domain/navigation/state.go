// Package navigation decide qué pantalla ve cada dispositivo.
//
// El estado es un valor: Derive lo arma al cargar y Reduce lo avanza con
// acciones tipadas. Ninguna función de este paquete hace I/O; quien la usa
// resuelve antes la clasificación del código, la sesión y la mascota.
package navigation

import (
	"pet-qr-tags/internal/domain/tags"
)

// Screen es la pantalla principal.
// @Enum Login, Registration, OwnerDashboard, LostModeEditor, Settings, About, FinderView
type Screen string

const (
	ScreenLogin          Screen = "Login"
	ScreenRegistration   Screen = "Registration"
	ScreenOwnerDashboard Screen = "OwnerDashboard"
	ScreenLostModeEditor Screen = "LostModeEditor"
	ScreenSettings       Screen = "Settings"
	ScreenAbout          Screen = "About"
	ScreenFinderView     Screen = "FinderView"
)

// OverlayScanConsent se muestra sobre FinderView hasta el primer toque.
const OverlayScanConsent = "ScanConsentOverlay"

// Authenticated indica si la pantalla pertenece al dueño logueado.
func (s Screen) Authenticated() bool {
	switch s {
	case ScreenRegistration, ScreenOwnerDashboard, ScreenLostModeEditor, ScreenSettings, ScreenAbout:
		return true
	}
	return false
}

type State struct {
	Screen Screen `json:"screen"`
	// Overlay solo existe sobre FinderView.
	Overlay string `json:"overlay,omitempty"`

	// TagCode es el código de la URL con la que se entró.
	TagCode string `json:"tag_code,omitempty"`
	// Username del dueño logueado.
	Username string `json:"username,omitempty"`
	HasPet   bool   `json:"has_pet"`

	// Login precargado.
	Prefill string `json:"prefill,omitempty"`
	Message string `json:"message,omitempty"`

	Unsaved bool `json:"unsaved"`
}

// EnteredViaTag: la sesión arrancó desde /qr/<code>.
func (s State) EnteredViaTag() bool { return s.TagCode != "" }

// ConsentPending: el escaneo todavía no se registró.
func (s State) ConsentPending() bool {
	return s.Screen == ScreenFinderView && s.Overlay == OverlayScanConsent
}

// Inputs es lo que hace falta saber al cargar.
type Inputs struct {
	// TagCode vacío significa URL sin contexto de etiqueta.
	TagCode        string
	Classification tags.Classification
	// SessionUser es el username cacheado en el dispositivo, si hay.
	SessionUser string
	// HasPet solo importa cuando la sesión se usa.
	HasPet bool
}

// Derive arma el estado inicial.
func Derive(in Inputs) State {
	code := in.TagCode

	if code != "" && in.Classification == tags.ClassLost {
		return State{Screen: ScreenFinderView, Overlay: OverlayScanConsent, TagCode: code}
	}

	if code != "" && in.Classification != tags.ClassInvalid && in.SessionUser != code {
		return State{
			Screen:  ScreenLogin,
			TagCode: code,
			Prefill: code,
			Message: in.Classification.Message(),
		}
	}

	if in.SessionUser != "" && (code == "" || in.SessionUser == code) {
		return State{
			Screen:   homeFor(in.HasPet),
			TagCode:  code,
			Username: in.SessionUser,
			HasPet:   in.HasPet,
		}
	}

	st := State{Screen: ScreenLogin, TagCode: code}
	if code != "" {
		st.Message = in.Classification.Message()
	}
	return st
}

func homeFor(hasPet bool) Screen {
	if hasPet {
		return ScreenOwnerDashboard
	}
	return ScreenRegistration
}
