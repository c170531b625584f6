package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"theater-backend/internal/middleware"
	"theater-backend/internal/models"
	"theater-backend/internal/services"
)

type PaymentLinkHandler struct {
	Service *services.PaymentLinkService
}

func NewPaymentLinkHandler(service *services.PaymentLinkService) *PaymentLinkHandler {
	return &PaymentLinkHandler{Service: service}
}

// GetStatus reports whether the payment gateway is configured.
func (h *PaymentLinkHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"enabled": h.Service.IsEnabled()})
}

// CreateLink creates a gateway order for the open balance of a reservation.
func (h *PaymentLinkHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetEmailFromContext(r.Context())
	link, err := h.Service.CreateForBalance(r.Context(), reservationID, actor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(link)
}

// ListLinks returns the payment links created for one reservation.
func (h *PaymentLinkHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	links, err := h.Service.Repo.ListByReservation(r.Context(), reservationID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if links == nil {
		links = []*models.PaymentLink{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(links)
}

// HandleWebhook processes gateway webhook events.
func (h *PaymentLinkHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("[PaymentLink] Failed to read webhook body: %v", err)
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[PaymentLink] Invalid webhook signature")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[PaymentLink] Failed to parse webhook: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	event, _ := payload["event"].(string)
	payloadData, _ := payload["payload"].(map[string]interface{})

	log.Printf("[PaymentLink] Received webhook: %s", event)

	if err := h.Service.ProcessWebhook(r.Context(), event, payloadData); err != nil {
		log.Printf("[PaymentLink] Webhook processing error: %v", err)
		// Return 200 anyway to prevent retries for known errors
	}

	// Always return 200 to acknowledge receipt
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
