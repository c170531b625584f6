package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"theater-backend/internal/cache"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

type MerchandiseHandler struct {
	Repo *repositories.MerchandiseRepository
}

func NewMerchandiseHandler(repo *repositories.MerchandiseRepository) *MerchandiseHandler {
	return &MerchandiseHandler{Repo: repo}
}

func (h *MerchandiseHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMerchandiseItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := &models.MerchandiseItem{
		Name:      req.Name,
		Price:     req.Price,
		ImageURL:  req.ImageURL,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if err := h.Repo.Create(r.Context(), item); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateMerchandiseCaches(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *MerchandiseHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	items, err := h.Repo.List(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if items == nil {
		items = []*models.MerchandiseItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// ListPublicItems serves the active catalog to the public booking form.
func (h *MerchandiseHandler) ListPublicItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if items == nil {
		items = []*models.MerchandiseItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *MerchandiseHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	item, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}

	var req struct {
		Name      *string  `json:"name"`
		Price     *float64 `json:"price"`
		ImageURL  *string  `json:"image_url"`
		IsActive  *bool    `json:"is_active"`
		SortOrder *int     `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := h.Repo.Update(r.Context(), item); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateMerchandiseCaches(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// GetReservationLines returns the merchandise lines on one reservation.
func (h *MerchandiseHandler) GetReservationLines(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	lines, err := h.Repo.ListByReservation(r.Context(), reservationID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if lines == nil {
		lines = []repositories.ReservationMerchandiseLine{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lines)
}
