package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"theater-backend/internal/live"
	"theater-backend/internal/middleware"
	"theater-backend/internal/models"
	"theater-backend/internal/services"
	"theater-backend/internal/timeutil"
)

type ReservationHandler struct {
	Service *services.ReservationService
}

func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: service}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Force booking past capacity is an admin call
	if req.ForceBook {
		if role, _ := middleware.GetRoleFromContext(r.Context()); role != "admin" {
			http.Error(w, "Force booking requires admin role", http.StatusForbidden)
			return
		}
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	res, err := h.Service.Submit(r.Context(), &req, actor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live.Publish("reservation_created", res.ID, res)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

// CreateOption places a capacity hold without pricing.
func (h *ReservationHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	res, err := h.Service.CreateOption(r.Context(), &req, actor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	res, err := h.Service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Reservation not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	filter := models.ReservationFilter{
		Search: r.URL.Query().Get("search"),
		Tag:    r.URL.Query().Get("tag"),
	}
	if v := r.URL.Query().Get("event_id"); v != "" {
		filter.EventID, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = models.ReservationStatus(v)
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := timeutil.ParseInVenue(timeutil.DateLayout, v)
		if err != nil {
			http.Error(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DateFrom = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := timeutil.ParseInVenue(timeutil.DateLayout, v)
		if err != nil {
			http.Error(w, "Invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DateTo = &t
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	reservations, err := h.Service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if reservations == nil {
		reservations = []*models.Reservation{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reservations)
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	res, err := h.Service.Update(r.Context(), id, &req, actor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status models.ReservationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	if err := h.Service.UpdateStatus(r.Context(), id, req.Status, actor); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live.Publish("reservation_status_changed", id, map[string]string{"status": string(req.Status)})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Status updated"})
}

func (h *ReservationHandler) transition(w http.ResponseWriter, r *http.Request, message string, fn func(ctx context.Context, id int, actor string) error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	if err := fn(r.Context(), id, actor); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live.Publish("reservation_status_changed", id, map[string]string{"message": message})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Reservation confirmed", h.Service.Confirm)
}

func (h *ReservationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Reservation rejected", h.Service.Reject)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Reservation cancelled", h.Service.Cancel)
}

func (h *ReservationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Checked in", h.Service.CheckIn)
}

func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional, a missing reason is stored empty
	json.NewDecoder(r.Body).Decode(&req)

	actor, _ := middleware.GetEmailFromContext(r.Context())
	if err := h.Service.Delete(r.Context(), id, req.Reason, actor); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	live.Publish("reservation_deleted", id, nil)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Reservation archived and deleted"})
}
