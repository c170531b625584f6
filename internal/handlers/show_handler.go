package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

type ShowHandler struct {
	Repo *repositories.ShowRepository
}

func NewShowHandler(repo *repositories.ShowRepository) *ShowHandler {
	return &ShowHandler{Repo: repo}
}

func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	show := &models.Show{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := h.Repo.Create(r.Context(), show); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(show)
}

func (h *ShowHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid show ID", http.StatusBadRequest)
		return
	}

	show, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Show not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(show)
}

func (h *ShowHandler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if shows == nil {
		shows = []*models.Show{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(shows)
}

func (h *ShowHandler) UpdateShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid show ID", http.StatusBadRequest)
		return
	}

	show, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Show not found", http.StatusNotFound)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		show.Name = *req.Name
	}
	if req.Description != nil {
		show.Description = *req.Description
	}
	if req.IsActive != nil {
		show.IsActive = *req.IsActive
	}

	if err := h.Repo.Update(r.Context(), show); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(show)
}
