package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pet-qr-tags/internal/platform/apperr"
)

// ErrorResponse es el cuerpo JSON de todo error HTTP.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, apperr.ErrUnauthorized.Message, string(apperr.KindUnauthorized))
}

// FromError traduce errores de dominio a status + envelope.
// Un error sin Kind es un 500 genérico: nunca se filtra el detalle.
func FromError(w http.ResponseWriter, err error) {
	e, ok := apperr.As(err)
	if !ok {
		WriteError(w, http.StatusInternalServerError, apperr.ErrStoreUnavailable.Message, CodeInternalError)
		return
	}
	WriteJSON(w, StatusFor(e.Kind), ErrorResponse{Error: e.Message, Code: string(e.Kind), Field: e.Field, Fields: e.Fields})
}

func StatusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindInvalidCode, apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidPIN, apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindPasswordMismatch:
		return http.StatusForbidden
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindNotAllowed, apperr.KindCancelled:
		return http.StatusConflict
	case apperr.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON lee el body en v. Body vacío no es error.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
