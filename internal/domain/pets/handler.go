package pets

import (
	"errors"
	"net/http"
	"time"

	"pet-qr-tags/internal/middleware"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

const maxPhotoBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/v1/app/pet", func(pr chi.Router) {
		pr.Get("/", getPetHandler(svc))
		pr.Put("/", updatePetHandler(svc))
		pr.Post("/photo", uploadPhotoHandler(svc))
	})
}

// PetRequest es el cuerpo del formulario de mascota.
type PetRequest struct {
	Name          Field[string] `json:"name"`
	Type          string        `json:"type"`        // DOG, CAT, OTHER
	CustomType    string        `json:"custom_type"` // obligatorio si type=OTHER
	PhotoURL      Field[string] `json:"photo_url"`
	Features      Field[string] `json:"features"`
	SizeInfo      Field[string] `json:"size_info"`
	Temperament   Field[string] `json:"temperament"`
	HealthWarning Field[string] `json:"health_warning"`
	VetInfo       Field[string] `json:"vet_info"`
	Microchip     string        `json:"microchip"`
}

func (r PetRequest) Input() Input {
	return Input{
		Name:          r.Name,
		Type:          r.Type,
		CustomType:    r.CustomType,
		PhotoURL:      r.PhotoURL,
		Features:      r.Features,
		SizeInfo:      r.SizeInfo,
		Temperament:   r.Temperament,
		HealthWarning: r.HealthWarning,
		VetInfo:       r.VetInfo,
		Microchip:     r.Microchip,
	}
}

type PetResponse struct {
	ID            string        `json:"id"`
	OwnerUsername string        `json:"owner_username"`
	Name          Field[string] `json:"name"`
	Type          Kind          `json:"type"`
	PhotoURL      Field[string] `json:"photo_url"`
	Features      Field[string] `json:"features"`
	SizeInfo      Field[string] `json:"size_info"`
	Temperament   Field[string] `json:"temperament"`
	HealthWarning Field[string] `json:"health_warning"`
	VetInfo       Field[string] `json:"vet_info"`
	Microchip     string        `json:"microchip"`
	LostStatus    LostStatus    `json:"lost_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func ToResponse(p Pet) PetResponse {
	return PetResponse{
		ID:            p.ID,
		OwnerUsername: p.OwnerUsername,
		Name:          p.Name,
		Type:          p.Type,
		PhotoURL:      p.PhotoURL,
		Features:      p.Features,
		SizeInfo:      p.SizeInfo,
		Temperament:   p.Temperament,
		HealthWarning: p.HealthWarning,
		VetInfo:       p.VetInfo,
		Microchip:     p.Microchip,
		LostStatus:    p.LostStatus,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type photoResponse struct {
	URL string `json:"url"`
}

// getPetHandler godoc
// @Summary Mascota del dueño
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Success 200 {object} PetResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/app/pet [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			response.Unauthorized(w)
			return
		}

		p, err := svc.GetByOwner(r.Context(), claims.Username)
		if errors.Is(err, ErrNotFound) {
			response.FromError(w, apperr.ErrNotFound)
			return
		}
		if err != nil {
			response.FromError(w, apperr.Store(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description Edita la mascota del dueño. Mismas validaciones que el registro. El modo perdido no se toca aquí.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param payload body PetRequest true "Formulario de mascota"
// @Success 200 {object} PetResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "sin mascota registrada"
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/pet [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			response.Unauthorized(w)
			return
		}

		var req PetRequest
		if err := response.DecodeJSON(r, &req); err != nil {
			response.BadRequest(w, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), claims.Username, req.Input())
		if err != nil {
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// uploadPhotoHandler godoc
// @Summary Subir foto
// @Description multipart/form-data con el campo "photo". Devuelve la URL pública.
// @Tags pets
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param photo formData file true "Imagen"
// @Success 201 {object} photoResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /v1/app/pet/photo [post]
func uploadPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			response.Unauthorized(w)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
		if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
			response.BadRequest(w, "photo too large or invalid form")
			return
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			response.BadRequest(w, "photo is required")
			return
		}
		defer file.Close()

		url, err := svc.UploadPhoto(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, photoResponse{URL: url})
	}
}
