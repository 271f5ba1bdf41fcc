package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"country-explorer/internal/services"
)

type HealthHandler struct {
	userService *services.UserService
	logger      zerolog.Logger
}

func NewHealthHandler(userService *services.UserService, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{userService: userService, logger: logger}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "User Service Running",
		"status":  "OK",
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.userService.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Health check failed")
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
