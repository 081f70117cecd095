package handlers

import (
	"net/http"

	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/middleware"
	usermodel "github.com/Varun5711/devconnect/internal/models/user"
	"github.com/Varun5711/devconnect/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usermodel.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Debug("Failed to decode request: %v", err)
		respondBadBody(w)
		return
	}

	resp, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usermodel.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Debug("Failed to decode request: %v", err)
		respondBadBody(w)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	user, err := h.auth.CurrentUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
