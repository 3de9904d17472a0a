package tags

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-qr-tags/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

const adminKeyHeader = "X-Admin-Key"

func RegisterRoutes(r chi.Router, svc *Service, resolver *Resolver, adminKey string) {
	r.Get("/v1/tags/{code}", classifyHandler(resolver))
	r.Post("/v1/admin/tags", provisionHandler(svc, adminKey))
}

type classificationResponse struct {
	Code           string         `json:"code"`
	Classification Classification `json:"classification"`
	Message        string         `json:"message,omitempty"`
}

type provisionRequest struct {
	Code string `json:"code"`
	PIN  string `json:"pin"`
}

type tagResponse struct {
	Code      string    `json:"code"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// classifyHandler godoc
// @Summary Clasificar código QR
// @Description Devuelve INVALID, NEW, REGISTERED o LOST y el mensaje a mostrar. Nunca falla: un error de lookup es INVALID.
// @Tags tags
// @Produce json
// @Param code path string true "Código corto de la etiqueta"
// @Success 200 {object} classificationResponse
// @Router /v1/tags/{code} [get]
func classifyHandler(resolver *Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := resolver.Classify(r.Context(), chi.URLParam(r, "code"))
		response.WriteJSON(w, http.StatusOK, classificationResponse{
			Code:           res.Code,
			Classification: res.Classification,
			Message:        res.Message,
		})
	}
}

// provisionHandler godoc
// @Summary Alta de etiqueta
// @Description Crea una etiqueta vacía (EMPTY) con el PIN impreso en el paquete. Requiere X-Admin-Key.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Clave de administración"
// @Param payload body provisionRequest true "Código y PIN"
// @Success 201 {object} tagResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /v1/admin/tags [post]
func provisionHandler(svc *Service, adminKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Sin clave configurada el endpoint no existe.
		if strings.TrimSpace(adminKey) == "" {
			http.NotFound(w, r)
			return
		}
		got := r.Header.Get(adminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(adminKey)) != 1 {
			response.WriteError(w, http.StatusUnauthorized, "invalid admin key", "UNAUTHORIZED")
			return
		}

		var req provisionRequest
		if err := response.DecodeJSON(r, &req); err != nil {
			response.BadRequest(w, "invalid json")
			return
		}

		t, err := svc.Provision(r.Context(), req.Code, req.PIN)
		switch {
		case errors.Is(err, ErrInvalidInput):
			response.BadRequest(w, "code must be alphanumeric and pin is required")
			return
		case errors.Is(err, ErrAlreadyExists):
			response.WriteError(w, http.StatusConflict, "tag already exists", "CONFLICT")
			return
		case err != nil:
			response.WriteError(w, http.StatusInternalServerError, "internal error", response.CodeInternalError)
			return
		}

		response.WriteJSON(w, http.StatusCreated, tagResponse{Code: t.ShortCode, Status: t.Status, CreatedAt: t.CreatedAt})
	}
}
