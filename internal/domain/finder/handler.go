package finder

import (
	"net/http"

	"pet-qr-tags/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/v1/finder/{code}", getFinderViewHandler(svc))
}

// getFinderViewHandler godoc
// @Summary Vista pública de la mascota
// @Description Solo campos marcados como públicos, más el contacto del dueño según su preferencia. Solo existe mientras la mascota está perdida. No requiere autenticación.
// @Tags finder
// @Produce json
// @Param code path string true "Código corto de la etiqueta"
// @Success 200 {object} View
// @Failure 404 {object} response.ErrorResponse
// @Router /v1/finder/{code} [get]
func getFinderViewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Load(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, v)
	}
}
