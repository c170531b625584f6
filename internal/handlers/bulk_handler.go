package handlers

import (
	"encoding/json"
	"net/http"

	"theater-backend/internal/middleware"
	"theater-backend/internal/models"
	"theater-backend/internal/services"
)

type BulkHandler struct {
	Service *services.BulkService
}

func NewBulkHandler(service *services.BulkService) *BulkHandler {
	return &BulkHandler{Service: service}
}

type bulkRequest struct {
	IDs    []int                `json:"ids"`
	Reason string               `json:"reason,omitempty"`
	Method models.PaymentMethod `json:"method,omitempty"`
}

func (h *BulkHandler) decode(w http.ResponseWriter, r *http.Request) (*bulkRequest, bool) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	if len(req.IDs) == 0 {
		http.Error(w, "ids is required", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (h *BulkHandler) respond(w http.ResponseWriter, result services.BulkResult) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"result":  result,
		"summary": result.Summary(),
	})
}

func (h *BulkHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.respond(w, h.Service.Confirm(r.Context(), req.IDs, actor))
}

func (h *BulkHandler) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.respond(w, h.Service.Reject(r.Context(), req.IDs, actor))
}

func (h *BulkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.respond(w, h.Service.Delete(r.Context(), req.IDs, req.Reason, actor))
}

func (h *BulkHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	method := req.Method
	if method == "" {
		method = models.MethodBankTransfer
	}
	actor, _ := middleware.GetEmailFromContext(r.Context())
	h.respond(w, h.Service.MarkPaid(r.Context(), req.IDs, method, actor))
}
