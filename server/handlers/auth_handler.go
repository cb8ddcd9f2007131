package handlers

import (
	"net/http"

	"ptalk-server/models"
	"ptalk-server/server/middleware"
	services "ptalk-server/service"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.authService.Login(req)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, resp)
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	profile, err := h.authService.Register(req)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(profile))
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, resp)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		writeError(w, services.ErrUnauthorized, nil)
		return
	}
	if err := h.authService.Logout(token); err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess[any](w, nil)
}
