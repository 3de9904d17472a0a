package navigation

import (
	"strings"

	"pet-qr-tags/internal/platform/apperr"
)

const (
	PromptLogout   = "Kaydedilmemiş değişiklikler var. Çıkış yapmak istediğinize emin misiniz?"
	PromptNavigate = "Kaydedilmemiş değişiklikleriniz var. Kaydetmeden çıkmak istediğinize emin misiniz?"
)

var (
	ErrNeedsPet = apperr.NotAllowed("Önce hayvan kaydı yapmalısınız.")
	ErrNotHere  = apperr.NotAllowed("Bu işlem şu anda yapılamaz.")
)

// Action es una acción tipada sobre el estado.
type Action interface {
	action()
}

type Navigate struct{ To Screen }

// MarkUnsaved lo levantan los editores hijos.
type MarkUnsaved struct{ Dirty bool }

type LoggedIn struct {
	Username string
	HasPet   bool
}

// Registered: la mascota quedó guardada por primera vez.
type Registered struct{}

type Logout struct{}

// ExitFinder lleva al login con el código precargado.
type ExitFinder struct{}

type ConsentGiven struct{}

func (Navigate) action()     {}
func (MarkUnsaved) action()  {}
func (LoggedIn) action()     {}
func (Registered) action()   {}
func (Logout) action()       {}
func (ExitFinder) action()   {}
func (ConsentGiven) action() {}

// Effect son los efectos que el llamador tiene que ejecutar.
// Reload fuerza recargar la URL original. DiscardEdits indica que se
// confirmó salir con cambios y el borrador se tira.
type Effect struct {
	Reload       bool   `json:"reload,omitempty"`
	ClearSession bool   `json:"clear_session,omitempty"`
	DiscardEdits bool   `json:"discard_edits,omitempty"`
	LogScan      bool   `json:"log_scan,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
}

// Reduce aplica a sobre s. Si la acción necesita confirmación y confirm es
// false, devuelve s sin cambios, el prompt y un error CANCELLED.
func Reduce(s State, a Action, confirm bool) (State, Effect, error) {
	switch a := a.(type) {
	case Navigate:
		return navigate(s, a.To, confirm)

	case MarkUnsaved:
		if !s.Screen.Authenticated() {
			return s, Effect{}, ErrNotHere
		}
		s.Unsaved = a.Dirty
		return s, Effect{}, nil

	case LoggedIn:
		if s.Screen != ScreenLogin {
			return s, Effect{}, ErrNotHere
		}
		username := strings.TrimSpace(a.Username)
		if username == "" {
			return s, Effect{}, apperr.ErrUnauthorized
		}
		return State{
			Screen:   homeFor(a.HasPet),
			TagCode:  s.TagCode,
			Username: username,
			HasPet:   a.HasPet,
		}, Effect{}, nil

	case Registered:
		if s.Screen != ScreenRegistration {
			return s, Effect{}, ErrNotHere
		}
		s.Screen = ScreenOwnerDashboard
		s.HasPet = true
		s.Unsaved = false
		return s, Effect{}, nil

	case Logout:
		if !s.Screen.Authenticated() {
			return s, Effect{}, ErrNotHere
		}
		eff := Effect{ClearSession: true, Reload: s.EnteredViaTag()}
		if s.Unsaved {
			if !confirm {
				return s, Effect{Prompt: PromptLogout}, apperr.ErrCancelled
			}
			eff.DiscardEdits = true
		}
		return State{Screen: ScreenLogin, TagCode: s.TagCode, Prefill: s.TagCode}, eff, nil

	case ExitFinder:
		if s.Screen != ScreenFinderView {
			return s, Effect{}, ErrNotHere
		}
		return State{Screen: ScreenLogin, TagCode: s.TagCode, Prefill: s.TagCode}, Effect{}, nil

	case ConsentGiven:
		if !s.ConsentPending() {
			// Toque repetido: nada que registrar.
			return s, Effect{}, nil
		}
		s.Overlay = ""
		return s, Effect{LogScan: true}, nil
	}
	return s, Effect{}, ErrNotHere
}

func navigate(s State, to Screen, confirm bool) (State, Effect, error) {
	if !s.Screen.Authenticated() || !to.Authenticated() {
		return s, Effect{}, ErrNotHere
	}
	if to == ScreenOwnerDashboard || to == ScreenRegistration {
		to = homeFor(s.HasPet)
	}
	if to == ScreenLostModeEditor && !s.HasPet {
		return s, Effect{}, ErrNeedsPet
	}
	if to == s.Screen {
		return s, Effect{}, nil
	}

	var eff Effect
	if s.Unsaved {
		if !confirm {
			return s, Effect{Prompt: PromptNavigate}, apperr.ErrCancelled
		}
		eff.DiscardEdits = true
	}
	s.Screen = to
	s.Unsaved = false
	return s, eff, nil
}
