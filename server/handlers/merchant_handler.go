package handlers

import (
	"net/http"

	"ptalk-server/models"
	"ptalk-server/server/middleware"
	services "ptalk-server/service"
)

type MerchantHandler struct {
	merchantService *services.MerchantService
}

func NewMerchantHandler(merchantService *services.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

func currentMerchant(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.MerchantID(r.Context())
	if !ok {
		writeError(w, services.ErrUnauthorized, nil)
	}
	return id, ok
}

// GetProfile handles GET /v1/merchant/profile
func (h *MerchantHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	merchantID, ok := currentMerchant(w, r)
	if !ok {
		return
	}
	profile, err := h.merchantService.GetProfile(merchantID)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, profile)
}

// UpdateProfile handles PUT /v1/merchant/profile
func (h *MerchantHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	merchantID, ok := currentMerchant(w, r)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	profile, err := h.merchantService.UpdateProfile(merchantID, req)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, profile)
}

// ChangePassword handles POST /v1/merchant/change-password
func (h *MerchantHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	merchantID, ok := currentMerchant(w, r)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.merchantService.ChangePassword(merchantID, req); err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess[any](w, nil)
}
