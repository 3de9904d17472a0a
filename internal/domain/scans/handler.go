package scans

import (
	"net/http"
	"strconv"
	"time"

	"pet-qr-tags/internal/middleware"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/geo"
	"pet-qr-tags/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/v1/app/scans", listScansHandler(svc))
}

type EntryResponse struct {
	ID        string    `json:"id"`
	TagCode   string    `json:"tag_code"`
	ScannedAt time.Time `json:"scanned_at"`
	Location  *geo.Fix  `json:"location,omitempty"`
	Device    Device    `json:"device"`
	IP        string    `json:"ip,omitempty"`
}

func ToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		TagCode:   e.TagCode,
		ScannedAt: e.ScannedAt,
		Location:  e.Location,
		Device:    e.Device,
		IP:        e.IP,
	}
}

// listScansHandler godoc
// @Summary Últimos escaneos de la etiqueta
// @Description Solo el dueño. La más nueva primero.
// @Tags scans
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param limit query int false "Máximo (default 10)"
// @Success 200 {array} EntryResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /v1/app/scans [get]
func listScansHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			response.Unauthorized(w)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				response.BadRequest(w, "invalid limit")
				return
			}
			limit = n
		}

		list, err := svc.Recent(r.Context(), claims.Username, limit)
		if err != nil {
			response.FromError(w, apperr.Store(err))
			return
		}

		out := make([]EntryResponse, 0, len(list))
		for _, e := range list {
			out = append(out, ToResponse(e))
		}
		response.WriteJSON(w, http.StatusOK, out)
	}
}
