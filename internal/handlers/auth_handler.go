package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"country-explorer/internal/models"
	"country-explorer/internal/services"
)

type AuthHandler struct {
	userService *services.UserService
	logger      zerolog.Logger
}

func NewAuthHandler(userService *services.UserService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, r, h.logger, err, "")
		return
	}

	resp, err := h.userService.Register(r.Context(), req)
	if err != nil {
		respondWithError(w, r, h.logger, err, "Failed to register user")
		return
	}

	respondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, r, h.logger, err, "")
		return
	}

	resp, err := h.userService.Login(r.Context(), req)
	if err != nil {
		respondWithError(w, r, h.logger, err, "Failed to login user")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
