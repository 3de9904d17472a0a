package app

import (
	"context"
	"net/http"

	"pet-qr-tags/internal/domain/navigation"
	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/middleware"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/geo"
	"pet-qr-tags/internal/platform/response"
	"pet-qr-tags/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/v1/app", func(ar chi.Router) {
		ar.Post("/boot", bootHandler(svc))
		ar.Post("/login", loginHandler(svc))
		ar.Post("/register", registerHandler(svc))
		ar.Post("/navigate", navigateHandler(svc))
		ar.Put("/unsaved", unsavedHandler(svc))
		ar.Post("/logout", logoutHandler(svc))
		ar.Put("/theme", themeHandler(svc))
		ar.Post("/update/ack", ackUpdateHandler(svc))

		ar.Post("/finder/consent", finderConsentHandler(svc))
		ar.Post("/finder/login", finderLoginHandler(svc))

		ar.Route("/lost", func(lr chi.Router) {
			lr.Get("/", getLostHandler(svc))
			lr.Post("/toggle", toggleLostHandler(svc))
			lr.Put("/message", lostMessageHandler(svc))
			lr.Post("/locate", locateHandler(svc))
			lr.Post("/map/lock", lockMapHandler(svc))
			lr.Post("/map/unlock", unlockMapHandler(svc))
			lr.Post("/map/tap", moveMarkerHandler(svc.TapMap))
			lr.Post("/map/drag", moveMarkerHandler(svc.DragMarker))
			lr.Post("/save", saveLostHandler(svc))
		})

		ar.Route("/settings", func(sr chi.Router) {
			sr.Patch("/profile", profileHandler(svc))
			sr.Post("/password", passwordHandler(svc))
			sr.Put("/preferences", preferencesHandler(svc))
			sr.Put("/emergency", emergencyHandler(svc))
			sr.Post("/email/send", sendEmailCodeHandler(svc))
			sr.Post("/email/verify", verifyEmailHandler(svc))
		})
	})
}

// promptResponse es el 409 de una transición con cambios sin guardar.
type promptResponse struct {
	response.ErrorResponse
	Prompt string `json:"prompt"`
}

func writeNavError(w http.ResponseWriter, err error, eff navigation.Effect) {
	if e, ok := apperr.As(err); ok && e.Kind == apperr.KindCancelled {
		response.WriteJSON(w, http.StatusConflict, promptResponse{
			ErrorResponse: response.ErrorResponse{Error: e.Message, Code: string(e.Kind)},
			Prompt:        eff.Prompt,
		})
		return
	}
	response.FromError(w, err)
}

func device(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetDeviceID(r.Context())
	if !ok {
		response.BadRequest(w, "missing "+middleware.DeviceHeader+" header")
	}
	return id, ok
}

func owner(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := middleware.GetClaims(r.Context())
	if !ok {
		response.Unauthorized(w)
	}
	return c, ok
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := response.DecodeJSON(r, v); err != nil {
		response.BadRequest(w, "invalid json")
		return false
	}
	return true
}

type BootRequest struct {
	// Path es la ruta que abrió el navegador, p. ej. /qr/MTRX01.
	Path   string       `json:"path"`
	Device scans.Device `json:"device"`
}

// bootHandler godoc
// @Summary Carga inicial de la app
// @Description Clasifica el código de la URL, valida la sesión cacheada y devuelve la pantalla a mostrar. Una visita a una etiqueta registrada se loguea sin ubicación.
// @Tags app
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param Authorization header string false "Bearer token"
// @Param body body BootRequest true "Ruta y dispositivo"
// @Success 200 {object} BootResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /v1/app/boot [post]
func bootHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dev, ok := device(w, r)
		if !ok {
			return
		}
		var req BootRequest
		if !decode(w, r, &req) {
			return
		}

		var claims *auth.Claims
		if c, ok := middleware.GetClaims(r.Context()); ok {
			claims = &c
		}

		out, err := svc.Boot(r.Context(), dev, claims, Visit{Path: req.Path, Device: req.Device, RemoteAddr: r.RemoteAddr})
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}

type LoginRequest struct {
	Code string `json:"code"`
	PIN  string `json:"pin"`
}

// loginHandler godoc
// @Summary Login con código y PIN
// @Tags app
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body LoginRequest true "Código y PIN"
// @Success 200 {object} LoginResult
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/app/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dev, ok := device(w, r)
		if !ok {
			return
		}
		var req LoginRequest
		if !decode(w, r, &req) {
			return
		}

		out, err := svc.Login(r.Context(), dev, req.Code, req.PIN)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}

type OwnerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	District string `json:"district"`
}

func (o OwnerRequest) Input() users.ProfileInput {
	return users.ProfileInput{
		FullName: o.FullName,
		Email:    o.Email,
		Phone:    o.Phone,
		City:     o.City,
		District: o.District,
	}
}

type RegisterRequest struct {
	Owner OwnerRequest    `json:"owner"`
	Pet   pets.PetRequest `json:"pet"`
}

// registerHandler godoc
// @Summary Alta de dueño y mascota
// @Description Valida ambos formularios juntos. Con éxito la etiqueta queda ASSIGNED y se pasa al panel.
// @Tags app
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body RegisterRequest true "Dueño y mascota"
// @Success 201 {object} RegisterResult
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req RegisterRequest
		if !decode(w, r, &req) {
			return
		}

		out, err := svc.Register(r.Context(), c, RegisterInput{Owner: req.Owner.Input(), Pet: req.Pet.Input()})
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusCreated, out)
	}
}

type NavigateRequest struct {
	To      navigation.Screen `json:"to"`
	Confirm bool              `json:"confirm"`
}

// navigateHandler godoc
// @Summary Cambio de pantalla
// @Description Con cambios sin guardar y sin confirm responde 409 CANCELLED con el prompt.
// @Tags app
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body NavigateRequest true "Destino"
// @Success 200 {object} NavResult
// @Failure 409 {object} promptResponse
// @Router /v1/app/navigate [post]
func navigateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req NavigateRequest
		if !decode(w, r, &req) {
			return
		}

		out, err := svc.Navigate(r.Context(), c, req.To, req.Confirm)
		if err != nil {
			writeNavError(w, err, out.Effect)
			return
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}

type UnsavedRequest struct {
	Dirty bool `json:"dirty"`
}

// unsavedHandler godoc
// @Summary Marca cambios sin guardar del formulario actual
// @Tags app
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body UnsavedRequest true "Estado"
// @Success 200 {object} navigation.State
// @Router /v1/app/unsaved [put]
func unsavedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req UnsavedRequest
		if !decode(w, r, &req) {
			return
		}

		state, err := svc.MarkUnsaved(r.Context(), c, req.Dirty)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, state)
	}
}

type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// logoutHandler godoc
// @Summary Cierra la sesión del dispositivo
// @Description effect.reload indica que se entró por /qr/<code> y hay que recargar esa URL.
// @Tags app
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body ConfirmRequest false "Confirmación"
// @Success 200 {object} NavResult
// @Failure 409 {object} promptResponse
// @Router /v1/app/logout [post]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req ConfirmRequest
		if !decode(w, r, &req) {
			return
		}

		out, err := svc.Logout(r.Context(), c, req.Confirm)
		if err != nil {
			writeNavError(w, err, out.Effect)
			return
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}

type ThemeRequest struct {
	Theme Theme `json:"theme"`
}

// themeHandler godoc
// @Summary Cambia el tema
// @Tags app
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body ThemeRequest true "light o dark"
// @Success 200 {object} ThemeRequest
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/theme [put]
func themeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dev, ok := device(w, r)
		if !ok {
			return
		}
		var req ThemeRequest
		if !decode(w, r, &req) {
			return
		}

		theme, err := svc.SetTheme(r.Context(), dev, req.Theme)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, ThemeRequest{Theme: theme})
	}
}

type versionResponse struct {
	Version string `json:"version"`
}

// ackUpdateHandler godoc
// @Summary Oculta el banner de actualización
// @Tags app
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Success 200 {object} versionResponse
// @Router /v1/app/update/ack [post]
func ackUpdateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dev, ok := device(w, r)
		if !ok {
			return
		}
		v, err := svc.AckUpdate(r.Context(), dev)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, versionResponse{Version: v})
	}
}

type ConsentRequest struct {
	Location *geo.Fix     `json:"location"`
	Device   scans.Device `json:"device"`
}

// finderConsentHandler godoc
// @Summary Consentimiento del que encontró la mascota
// @Description Cierra el overlay y registra el escaneo con la ubicación si el navegador la dio. Toques repetidos no duplican el registro.
// @Tags finder
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body ConsentRequest true "Ubicación y dispositivo"
// @Success 200 {object} ConsentResult
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/app/finder/consent [post]
func finderConsentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dev, ok := device(w, r)
		if !ok {
			return
		}
		var req ConsentRequest
		if !decode(w, r, &req) {
			return
		}

		out, err := svc.FinderConsent(r.Context(), dev, ConsentInput{
			Location:   req.Location,
			Device:     req.Device,
			RemoteAddr: r.RemoteAddr,
		})
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}

// finderLoginHandler godoc
// @Summary Pasa de la vista pública al login
// @Tags finder
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Success 200 {object} navigation.State
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/app/finder/login [post]
func finderLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dev, ok := device(w, r)
		if !ok {
			return
		}
		state, err := svc.FinderLogin(r.Context(), dev)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, state)
	}
}

// writeLost responde la vista del editor. En error se devuelve solo el error:
// el borrador ya quedó guardado con su estado.
func writeLost(w http.ResponseWriter, v LostView, err error) {
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, v)
}

// getLostHandler godoc
// @Summary Borrador del editor de pérdida
// @Tags lost
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Success 200 {object} LostView
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/app/lost [get]
func getLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		v, err := svc.LostDraft(r.Context(), c)
		writeLost(w, v, err)
	}
}

type ToggleRequest struct {
	Active   bool     `json:"active"`
	Location *geo.Fix `json:"location"`
}

// toggleLostHandler godoc
// @Summary Switch Safe/Lost
// @Description Al activar usa la ubicación del navegador si vino. Sin ubicación el switch igual cambia.
// @Tags lost
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body ToggleRequest true "Estado"
// @Success 200 {object} LostView
// @Router /v1/app/lost/toggle [post]
func toggleLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req ToggleRequest
		if !decode(w, r, &req) {
			return
		}
		v, err := svc.ToggleLost(r.Context(), c, req.Active, req.Location)
		writeLost(w, v, err)
	}
}

type MessageRequest struct {
	Message string `json:"message"`
}

// lostMessageHandler godoc
// @Summary Nota para quien la encuentre
// @Tags lost
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body MessageRequest true "Nota"
// @Success 200 {object} LostView
// @Router /v1/app/lost/message [put]
func lostMessageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req MessageRequest
		if !decode(w, r, &req) {
			return
		}
		v, err := svc.SetLostMessage(r.Context(), c, req.Message)
		writeLost(w, v, err)
	}
}

type LocateRequest struct {
	Location *geo.Fix `json:"location"`
}

// locateHandler godoc
// @Summary Centra el mapa en la ubicación actual
// @Tags lost
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body LocateRequest true "Lectura del navegador"
// @Success 200 {object} LostView
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/app/lost/locate [post]
func locateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req LocateRequest
		if !decode(w, r, &req) {
			return
		}
		v, err := svc.LocateMe(r.Context(), c, req.Location)
		writeLost(w, v, err)
	}
}

// lockMapHandler godoc
// @Summary Bloquea el mapa
// @Tags lost
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Success 200 {object} LostView
// @Router /v1/app/lost/map/lock [post]
func lockMapHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		v, err := svc.LockMap(r.Context(), c)
		writeLost(w, v, err)
	}
}

// unlockMapHandler godoc
// @Summary Desbloquea el mapa
// @Tags lost
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Success 200 {object} LostView
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/app/lost/map/unlock [post]
func unlockMapHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		v, err := svc.UnlockMap(r.Context(), c)
		writeLost(w, v, err)
	}
}

type markerMove func(ctx context.Context, c auth.Claims, p geo.Point) (LostView, error)

// moveMarkerHandler godoc
// @Summary Mueve el marcador (tap o drag)
// @Description Solo con el mapa desbloqueado.
// @Tags lost
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body geo.Point true "Coordenada"
// @Success 200 {object} LostView
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/lost/map/tap [post]
// @Router /v1/app/lost/map/drag [post]
func moveMarkerHandler(move markerMove) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var p geo.Point
		if !decode(w, r, &p) {
			return
		}
		v, err := move(r.Context(), c, p)
		writeLost(w, v, err)
	}
}

type SaveLostRequest struct {
	Password string `json:"password"`
}

// saveLostHandler godoc
// @Summary Guarda el estado de pérdida
// @Description Pasar de Lost a Safe exige la contraseña actual.
// @Tags lost
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body SaveLostRequest false "Contraseña"
// @Success 200 {object} LostView
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/lost/save [post]
func saveLostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req SaveLostRequest
		if !decode(w, r, &req) {
			return
		}
		v, err := svc.SaveLost(r.Context(), c, req.Password)
		writeLost(w, v, err)
	}
}

// profileHandler godoc
// @Summary Actualiza el perfil
// @Description Cambiar el email anula la verificación.
// @Tags settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body OwnerRequest true "Perfil"
// @Success 200 {object} users.User
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/settings/profile [patch]
func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req OwnerRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := svc.UpdateProfile(r.Context(), c, req.Input())
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, u)
	}
}

type PasswordRequest struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
	Confirm string `json:"confirm_password"`
}

// passwordHandler godoc
// @Summary Cambia contraseña y PIN
// @Tags settings
// @Accept json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body PasswordRequest true "Contraseñas"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/settings/password [post]
func passwordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req PasswordRequest
		if !decode(w, r, &req) {
			return
		}
		err := svc.ChangePassword(r.Context(), c, users.PasswordInput{Current: req.Current, New: req.New, Confirm: req.Confirm})
		if err != nil {
			response.FromError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type PreferencesRequest struct {
	PhoneChecked bool   `json:"phone_checked"`
	Phone        string `json:"phone"`
}

// preferencesHandler godoc
// @Summary Preferencia de contacto
// @Description Con teléfono marcado queda BOTH; si no, EMAIL.
// @Tags settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body PreferencesRequest true "Preferencias"
// @Success 200 {object} users.User
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/settings/preferences [put]
func preferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req PreferencesRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := svc.SavePreferences(r.Context(), c, users.PreferencesInput{PhoneChecked: req.PhoneChecked, Phone: req.Phone})
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, u)
	}
}

type EmergencyRequest struct {
	Name         string `json:"name"`
	EmailChecked bool   `json:"email_checked"`
	Email        string `json:"email"`
	PhoneChecked bool   `json:"phone_checked"`
	Phone        string `json:"phone"`
}

// emergencyHandler godoc
// @Summary Contacto de emergencia
// @Tags settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body EmergencyRequest true "Contacto"
// @Success 200 {object} users.User
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/settings/emergency [put]
func emergencyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req EmergencyRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := svc.SaveEmergencyContact(r.Context(), c, users.EmergencyInput{
			Name:         req.Name,
			EmailChecked: req.EmailChecked,
			Email:        req.Email,
			PhoneChecked: req.PhoneChecked,
			Phone:        req.Phone,
		})
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, u)
	}
}

// sendEmailCodeHandler godoc
// @Summary Envía el código de verificación de email
// @Tags settings
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Success 202
// @Failure 422 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /v1/app/settings/email/send [post]
func sendEmailCodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		if err := svc.SendEmailVerification(r.Context(), c); err != nil {
			response.FromError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

type VerifyEmailRequest struct {
	Code string `json:"code"`
}

// verifyEmailHandler godoc
// @Summary Verifica el email con el código recibido
// @Tags settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param body body VerifyEmailRequest true "Código"
// @Success 200 {object} users.User
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/settings/email/verify [post]
func verifyEmailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := owner(w, r)
		if !ok {
			return
		}
		var req VerifyEmailRequest
		if !decode(w, r, &req) {
			return
		}
		u, err := svc.VerifyEmail(r.Context(), c, req.Code)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, u)
	}
}
