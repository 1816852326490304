package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/aviksec/notes-vault/internal/api/middleware"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

func (h *ProfileHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.profileService.UpdateTheme(r.Context(), identity.UserID, req.Theme); err != nil {
		if domain.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [handlers.Profile] theme update failed: %v", err)
		http.Error(w, "An error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
