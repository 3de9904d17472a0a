package middleware

import (
	"net/http"
	"runtime/debug"

	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/platform/response"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chi/middleware.Recoverer: el panic va al logger
// estructurado y el cliente recibe el envelope de error de siempre.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      rec,
					"stack":      string(debug.Stack()),
				})
				response.WriteError(w, http.StatusInternalServerError, "internal error", response.CodeInternalError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
