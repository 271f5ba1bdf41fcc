package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"country-explorer/internal/apperror"
	"country-explorer/internal/middleware"
	"country-explorer/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	logger      zerolog.Logger
}

func NewUserHandler(userService *services.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, r, h.logger, apperror.Authentication(apperror.CodeInvalidToken, "User not authenticated"), "")
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		respondWithError(w, r, h.logger, err, "Failed to load profile")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
