package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"country-explorer/internal/apperror"
	"country-explorer/internal/middleware"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *apperror.Error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.Validation(apperror.CodeInvalidRequest, "Invalid request body")
	}
	return nil
}

// respondWithError writes err in the {status, message, code} shape. Anything
// outside the taxonomy is logged and reported as a 500 with fallback as message.
func respondWithError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error, fallback string) {
	appErr := apperror.From(err, fallback)
	if appErr.Kind == apperror.KindServer {
		logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r)).
			Str("path", r.URL.Path).
			Msg(fallback)
	}
	respondWithJSON(w, appErr.Status, appErr.Body())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusNotFound, apperror.Body{
		Status:  http.StatusNotFound,
		Message: "Route not found",
		Code:    "NOT_FOUND",
	})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusMethodNotAllowed, apperror.Body{
		Status:  http.StatusMethodNotAllowed,
		Message: "Method not allowed",
		Code:    "METHOD_NOT_ALLOWED",
	})
}
