// Package app coordina las pantallas: carga la sesión del dispositivo,
// resuelve el código escaneado y aplica las acciones de navegación sobre
// los servicios de dominio. Cada mutación autenticada se escribe en el
// cache de sesión en el mismo request.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-qr-tags/internal/domain/authgate"
	"pet-qr-tags/internal/domain/finder"
	"pet-qr-tags/internal/domain/lostmode"
	"pet-qr-tags/internal/domain/navigation"
	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/geo"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/ports/auth"
	"pet-qr-tags/internal/ports/session"
)

var ErrBusy = apperr.NotAllowed("İşleminiz devam ediyor, lütfen bekleyiniz.")

type Service struct {
	sessions session.Store
	resolver *tags.Resolver
	gate     *authgate.Gate
	users    *users.Service
	pets     *pets.Service
	lost     *lostmode.Service
	finder   *finder.Service
	scans    *scans.Service
	tokens   auth.Issuer
	log      logger.Logger

	version     string
	geoTimeout  time.Duration
	noticeLimit int
	consent     *scans.Latch
}

type Deps struct {
	Sessions session.Store
	Resolver *tags.Resolver
	Gate     *authgate.Gate
	Users    *users.Service
	Pets     *pets.Service
	Lost     *lostmode.Service
	Finder   *finder.Service
	Scans    *scans.Service
	Tokens   auth.Issuer
	Log      logger.Logger

	// Version es la versión actual del cliente (banner de actualización).
	Version     string
	GeoTimeout  time.Duration
	NoticeLimit int
}

func NewService(d Deps) *Service {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.GeoTimeout <= 0 {
		d.GeoTimeout = geo.DefaultTimeout
	}
	if d.NoticeLimit <= 0 {
		d.NoticeLimit = scans.DefaultLimit
	}
	return &Service{
		sessions:    d.Sessions,
		resolver:    d.Resolver,
		gate:        d.Gate,
		users:       d.Users,
		pets:        d.Pets,
		lost:        d.Lost,
		finder:      d.Finder,
		scans:       d.Scans,
		tokens:      d.Tokens,
		log:         d.Log,
		version:     d.Version,
		geoTimeout:  d.GeoTimeout,
		noticeLimit: d.NoticeLimit,
		consent:     scans.NewLatch(),
	}
}

// Visit describe la carga de una página.
type Visit struct {
	Path       string
	Device     scans.Device
	RemoteAddr string
}

type BootResult struct {
	State           navigation.State      `json:"state"`
	Classification  tags.Classification   `json:"classification,omitempty"`
	Theme           Theme                 `json:"theme"`
	UpdateAvailable bool                  `json:"update_available"`
	User            *users.User           `json:"user,omitempty"`
	Pet             *pets.PetResponse     `json:"pet,omitempty"`
	Finder          *finder.View          `json:"finder,omitempty"`
	ScanNotice      []scans.EntryResponse `json:"scan_notice,omitempty"`
}

// Boot arma la pantalla inicial. claims es nil sin token válido.
func (s *Service) Boot(ctx context.Context, device string, claims *auth.Claims, v Visit) (BootResult, error) {
	sess, err := s.loadSession(ctx, device)
	if err != nil {
		return BootResult{}, err
	}

	var out BootResult
	if sess.Version == "" {
		sess.Version = s.version
	} else if sess.Version != s.version {
		out.UpdateAvailable = true
	}
	out.Theme = sess.Theme

	code, hasCode := tags.ParsePath(v.Path)
	in := navigation.Inputs{}
	if hasCode {
		in.TagCode = code
		in.Classification = s.resolver.Classify(ctx, code).Classification
		out.Classification = in.Classification
	}

	var pet *pets.Pet
	if claims != nil && sess.User != nil && sess.User.Username == claims.Username {
		u, err := s.refreshUser(ctx, *sess.User)
		if err != nil {
			return BootResult{}, err
		}
		sess.User = &u
		in.SessionUser = u.Username
		pet, err = s.petOf(ctx, u.Username)
		if err != nil {
			return BootResult{}, err
		}
		in.HasPet = pet != nil
	} else {
		sess.User = nil
	}

	state := navigation.Derive(in)
	sess.Nav = state
	sess.Draft = nil

	if in.Classification == tags.ClassRegistered && in.SessionUser != code {
		// Visita ajena a una etiqueta registrada: se loguea sin pedir ubicación.
		s.scans.Log(ctx, scans.LogInput{TagCode: code, Device: v.Device, RemoteAddr: v.RemoteAddr})
	}

	switch state.Screen {
	case navigation.ScreenFinderView:
		view, err := s.finder.Load(ctx, code)
		if err != nil {
			return BootResult{}, err
		}
		out.Finder = &view
	case navigation.ScreenOwnerDashboard, navigation.ScreenRegistration:
		out.User = sess.User
		if pet != nil {
			resp := pets.ToResponse(*pet)
			out.Pet = &resp
		}
		out.ScanNotice = s.scanNotice(ctx, &sess)
	}

	if err := s.saveSession(ctx, device, sess); err != nil {
		return BootResult{}, err
	}
	out.State = state
	return out, nil
}

// refreshUser relee el usuario del store. Un usuario recién creado en el
// login (etiqueta nueva) todavía no existe: se mantiene la copia en sesión.
func (s *Service) refreshUser(ctx context.Context, cached users.User) (users.User, error) {
	u, err := s.users.Get(ctx, cached.Username)
	if err == nil {
		return u, nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return cached, nil
	}
	return users.User{}, err
}

func (s *Service) petOf(ctx context.Context, username string) (*pets.Pet, error) {
	p, err := s.pets.GetByOwner(ctx, username)
	if errors.Is(err, pets.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &p, nil
}

// scanNotice devuelve los últimos escaneos una sola vez por sesión.
func (s *Service) scanNotice(ctx context.Context, sess *Session) []scans.EntryResponse {
	if sess.ScanNoticeShown || sess.Nav.Screen != navigation.ScreenOwnerDashboard {
		return nil
	}
	list, err := s.scans.Recent(ctx, sess.Nav.Username, s.noticeLimit)
	if err != nil {
		s.log.Warn("scan notice lookup failed", map[string]any{"tag_code": sess.Nav.Username, "error": err.Error()})
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	sess.ScanNoticeShown = true
	out := make([]scans.EntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, scans.ToResponse(e))
	}
	return out
}

type LoginResult struct {
	Token      string                `json:"token"`
	ExpiresAt  time.Time             `json:"expires_at"`
	IsNew      bool                  `json:"is_new"`
	State      navigation.State      `json:"state"`
	User       users.User            `json:"user"`
	Pet        *pets.PetResponse     `json:"pet,omitempty"`
	ScanNotice []scans.EntryResponse `json:"scan_notice,omitempty"`
}

func (s *Service) Login(ctx context.Context, device, code, pin string) (LoginResult, error) {
	res, err := s.gate.Authenticate(ctx, code, pin)
	if err != nil {
		return LoginResult{}, err
	}

	sess, err := s.loadSession(ctx, device)
	if err != nil {
		return LoginResult{}, err
	}

	var pet *pets.Pet
	if !res.IsNew {
		if pet, err = s.petOf(ctx, res.User.Username); err != nil {
			return LoginResult{}, err
		}
	}

	nav := sess.Nav
	if nav.Screen != navigation.ScreenLogin {
		nav = navigation.State{Screen: navigation.ScreenLogin, TagCode: nav.TagCode}
	}
	state, _, err := navigation.Reduce(nav, navigation.LoggedIn{Username: res.User.Username, HasPet: pet != nil}, false)
	if err != nil {
		return LoginResult{}, err
	}

	token, exp, err := s.tokens.Issue(auth.Claims{Username: res.User.Username, DeviceID: device})
	if err != nil {
		return LoginResult{}, err
	}

	u := res.User
	sess.User = &u
	sess.Nav = state
	sess.Draft = nil
	sess.ScanNoticeShown = false

	out := LoginResult{
		Token:     token,
		ExpiresAt: exp,
		IsNew:     res.IsNew,
		State:     state,
		User:      u,
	}
	if pet != nil {
		resp := pets.ToResponse(*pet)
		out.Pet = &resp
	}
	out.ScanNotice = s.scanNotice(ctx, &sess)

	if err := s.saveSession(ctx, device, sess); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// ownerSession carga la sesión y verifica que pertenezca al token.
func (s *Service) ownerSession(ctx context.Context, c auth.Claims) (Session, error) {
	sess, err := s.loadSession(ctx, c.DeviceID)
	if err != nil {
		return Session{}, err
	}
	if sess.Nav.Username != c.Username || !sess.Nav.Screen.Authenticated() {
		return Session{}, apperr.ErrUnauthorized
	}
	return sess, nil
}

type RegisterInput struct {
	Owner users.ProfileInput
	Pet   pets.Input
}

type RegisterResult struct {
	State navigation.State `json:"state"`
	User  users.User       `json:"user"`
	Pet   pets.PetResponse `json:"pet"`
}

// Register completa el alta: valida dueño y mascota juntos, crea el
// usuario (etiqueta → ASSIGNED) y después la mascota. Si la mascota falló
// en un intento anterior, el reintento actualiza al usuario ya creado.
func (s *Service) Register(ctx context.Context, c auth.Claims, in RegisterInput) (RegisterResult, error) {
	sess, err := s.ownerSession(ctx, c)
	if err != nil {
		return RegisterResult{}, err
	}
	if sess.Nav.Screen != navigation.ScreenRegistration {
		return RegisterResult{}, navigation.ErrNotHere
	}

	missing := append(users.MissingOwnerFields(in.Owner), pets.MissingFields(in.Pet)...)
	if len(missing) > 0 {
		return RegisterResult{}, apperr.Required(missing...)
	}
	if err := pets.Validate(in.Pet); err != nil {
		return RegisterResult{}, err
	}

	var u users.User
	_, err = s.users.Get(ctx, c.Username)
	switch {
	case err == nil:
		u, err = s.users.UpdateProfile(ctx, c.Username, in.Owner)
	case errors.Is(err, apperr.ErrNotFound):
		base := users.Shell(c.Username, "")
		if sess.User != nil && sess.User.Username == c.Username {
			base = *sess.User
		}
		u, err = s.gate.CompleteRegistration(ctx, in.Owner.Apply(base))
	}
	if err != nil {
		return RegisterResult{}, err
	}

	p, err := s.pets.Save(ctx, c.Username, in.Pet)
	if err != nil {
		sess.User = &u
		if saveErr := s.saveSession(ctx, c.DeviceID, sess); saveErr != nil {
			s.log.Warn("session write failed", map[string]any{"device_id": c.DeviceID, "error": saveErr.Error()})
		}
		return RegisterResult{}, err
	}

	state, _, err := navigation.Reduce(sess.Nav, navigation.Registered{}, false)
	if err != nil {
		return RegisterResult{}, err
	}
	sess.User = &u
	sess.Nav = state
	if err := s.saveSession(ctx, c.DeviceID, sess); err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{State: state, User: u, Pet: pets.ToResponse(p)}, nil
}

type NavResult struct {
	State  navigation.State  `json:"state"`
	Effect navigation.Effect `json:"effect"`
	Lost   *LostView         `json:"lost,omitempty"`
}

// Navigate aplica la guarda de cambios sin guardar. Declinada devuelve
// CANCELLED con el prompt y no toca nada.
func (s *Service) Navigate(ctx context.Context, c auth.Claims, to navigation.Screen, confirm bool) (NavResult, error) {
	sess, err := s.ownerSession(ctx, c)
	if err != nil {
		return NavResult{}, err
	}

	state, eff, err := navigation.Reduce(sess.Nav, navigation.Navigate{To: to}, confirm)
	if err != nil {
		return NavResult{State: sess.Nav, Effect: eff}, err
	}

	out := NavResult{State: state, Effect: eff}
	if state.Screen != navigation.ScreenLostModeEditor {
		sess.Draft = nil
	} else if sess.Draft == nil || eff.DiscardEdits {
		pet, err := s.petOf(ctx, c.Username)
		if err != nil {
			return NavResult{}, err
		}
		if pet == nil {
			return NavResult{}, navigation.ErrNeedsPet
		}
		sess.Draft = lostmode.NewDraft(*pet)
	}
	sess.Nav = state
	if sess.Draft != nil {
		view := viewOf(sess)
		out.Lost = &view
	}

	if err := s.saveSession(ctx, c.DeviceID, sess); err != nil {
		return NavResult{}, err
	}
	return out, nil
}

// MarkUnsaved lo llaman los formularios del cliente. En el editor de
// pérdida el flag lo decide el borrador.
func (s *Service) MarkUnsaved(ctx context.Context, c auth.Claims, dirty bool) (navigation.State, error) {
	sess, err := s.ownerSession(ctx, c)
	if err != nil {
		return navigation.State{}, err
	}
	if sess.Draft != nil && sess.Nav.Screen == navigation.ScreenLostModeEditor {
		dirty = dirty || sess.Draft.Dirty()
	}
	state, _, err := navigation.Reduce(sess.Nav, navigation.MarkUnsaved{Dirty: dirty}, false)
	if err != nil {
		return sess.Nav, err
	}
	sess.Nav = state
	return state, s.saveSession(ctx, c.DeviceID, sess)
}

// Logout limpia la sesión. Entrando por /qr/<code> el cliente recarga.
func (s *Service) Logout(ctx context.Context, c auth.Claims, confirm bool) (NavResult, error) {
	sess, err := s.loadSession(ctx, c.DeviceID)
	if err != nil {
		return NavResult{}, err
	}

	var (
		state navigation.State
		eff   navigation.Effect
	)
	if sess.Nav.Username == c.Username && sess.Nav.Screen.Authenticated() {
		state, eff, err = navigation.Reduce(sess.Nav, navigation.Logout{}, confirm)
		if err != nil {
			return NavResult{State: sess.Nav, Effect: eff}, err
		}
	} else {
		state = navigation.State{Screen: navigation.ScreenLogin}
		eff = navigation.Effect{ClearSession: true}
	}

	sess.User = nil
	sess.Draft = nil
	sess.ScanNoticeShown = false
	sess.Nav = state
	if err := s.saveSession(ctx, c.DeviceID, sess); err != nil {
		return NavResult{}, err
	}
	return NavResult{State: state, Effect: eff}, nil
}

type ConsentInput struct {
	// Location es la lectura del navegador tras el toque; nil si se negó
	// el permiso o venció el tiempo.
	Location   *geo.Fix
	Device     scans.Device
	RemoteAddr string
}

type ConsentResult struct {
	State  navigation.State `json:"state"`
	Logged bool             `json:"logged"`
}

// FinderConsent registra el escaneo de una etiqueta perdida después del
// toque del usuario. Toques repetidos no duplican el registro.
func (s *Service) FinderConsent(ctx context.Context, device string, in ConsentInput) (ConsentResult, error) {
	release, ok := s.consent.TryAcquire(device)
	if !ok {
		return ConsentResult{}, ErrBusy
	}
	defer release()

	sess, err := s.loadSession(ctx, device)
	if err != nil {
		return ConsentResult{}, err
	}
	state, eff, err := navigation.Reduce(sess.Nav, navigation.ConsentGiven{}, false)
	if err != nil {
		return ConsentResult{State: sess.Nav}, err
	}
	if !eff.LogScan {
		return ConsentResult{State: state}, nil
	}

	sess.Nav = state
	if err := s.saveSession(ctx, device, sess); err != nil {
		return ConsentResult{}, err
	}

	fix := geo.Acquire(ctx, geo.Static(in.Location), s.geoTimeout)
	_, logged := s.scans.Log(ctx, scans.LogInput{
		TagCode:    state.TagCode,
		Location:   fix,
		Device:     in.Device,
		RemoteAddr: in.RemoteAddr,
	})
	return ConsentResult{State: state, Logged: logged}, nil
}

// FinderLogin sale de la vista pública hacia el login con el código.
func (s *Service) FinderLogin(ctx context.Context, device string) (navigation.State, error) {
	sess, err := s.loadSession(ctx, device)
	if err != nil {
		return navigation.State{}, err
	}
	state, _, err := navigation.Reduce(sess.Nav, navigation.ExitFinder{}, false)
	if err != nil {
		return sess.Nav, err
	}
	sess.Nav = state
	return state, s.saveSession(ctx, device, sess)
}

func (s *Service) SetTheme(ctx context.Context, device string, theme Theme) (Theme, error) {
	theme = Theme(strings.ToLower(strings.TrimSpace(string(theme))))
	if !theme.Valid() {
		return "", apperr.Validation("theme", "Geçersiz tema.")
	}
	sess, err := s.loadSession(ctx, device)
	if err != nil {
		return "", err
	}
	sess.Theme = theme
	return theme, s.saveSession(ctx, device, sess)
}

// AckUpdate guarda la versión actual: el banner deja de mostrarse.
func (s *Service) AckUpdate(ctx context.Context, device string) (string, error) {
	sess, err := s.loadSession(ctx, device)
	if err != nil {
		return "", err
	}
	sess.Version = s.version
	return s.version, s.saveSession(ctx, device, sess)
}
