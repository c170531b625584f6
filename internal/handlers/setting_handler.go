package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"theater-backend/internal/cache"
	"theater-backend/internal/middleware"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

type SettingHandler struct {
	Repo *repositories.SystemSettingRepository
}

func NewSettingHandler(repo *repositories.SystemSettingRepository) *SettingHandler {
	return &SettingHandler{Repo: repo}
}

func (h *SettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if settings == nil {
		settings = []*models.SystemSetting{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func (h *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	setting, err := h.Repo.Get(r.Context(), key)
	if err != nil {
		http.Error(w, "Setting not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(setting)
}

func (h *SettingHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	if err := h.Repo.Set(r.Context(), key, req.Value, actor); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateSettingCaches(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Setting saved"})
}

// GetPublicConfig exposes the pricing and booking configuration the booking
// form needs, without authentication.
func (h *SettingHandler) GetPublicConfig(w http.ResponseWriter, r *http.Request) {
	config := map[string]json.RawMessage{}

	for _, key := range []string{models.SettingKeyPricing, models.SettingKeyAddOns, models.SettingKeyBookingRules} {
		setting, err := h.Repo.Get(r.Context(), key)
		if err != nil {
			continue
		}
		config[key] = json.RawMessage(setting.SettingValue)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(config)
}
