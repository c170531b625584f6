package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/internal/timeutil"
)

// PaymentLinkService creates gateway orders for the open balance of a
// reservation and settles them into the ledger when the webhook fires.
type PaymentLinkService struct {
	Repo     *repositories.PaymentLinkRepository
	Payments *PaymentService

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewPaymentLinkService(keyID, keySecret, webhookSecret string, repo *repositories.PaymentLinkRepository, payments *PaymentService) *PaymentLinkService {
	return &PaymentLinkService{
		Repo:          repo,
		Payments:      payments,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func (s *PaymentLinkService) client() *razorpay.Client {
	if s.keyID == "" || s.keySecret == "" {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// IsEnabled reports whether the gateway is configured.
func (s *PaymentLinkService) IsEnabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// CreateForBalance creates a gateway order over the reservation's open
// balance and stores the link.
func (s *PaymentLinkService) CreateForBalance(ctx context.Context, reservationID int, actor string) (*models.PaymentLink, error) {
	client := s.client()
	if client == nil {
		return nil, fmt.Errorf("online payments are not configured")
	}

	summary, err := s.Payments.Summary(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if summary.AmountDue <= 0 {
		return nil, fmt.Errorf("reservation has no open balance")
	}

	// Gateway amounts are in minor units
	amountCents := int(summary.AmountDue * 100)
	orderData := map[string]interface{}{
		"amount":   amountCents,
		"currency": "EUR",
		"receipt":  fmt.Sprintf("res_%d_%d", reservationID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"reservation_id": reservationID,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("gateway returned no order id")
	}

	link := &models.PaymentLink{
		ReservationID: reservationID,
		OrderID:       orderID,
		Amount:        summary.AmountDue,
		Status:        models.PaymentLinkCreated,
		CreatedBy:     actor,
	}
	if err := s.Repo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to store payment link: %w", err)
	}

	return link, nil
}

// VerifyWebhookSignature checks the HMAC the gateway sends with each event.
func (s *PaymentLinkService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true // not configured, skip verification
	}

	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessWebhook settles captured payments into the reservation ledger.
func (s *PaymentLinkService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	switch event {
	case "payment.captured":
		return s.handleCaptured(ctx, payload)
	case "payment.failed":
		return s.handleFailed(ctx, payload)
	default:
		log.Printf("[PaymentLink] unhandled webhook event: %s", event)
		return nil
	}
}

func webhookEntity(payload map[string]interface{}) map[string]interface{} {
	paymentData, ok := payload["payment"].(map[string]interface{})
	if !ok {
		paymentData = payload
	}
	entity, ok := paymentData["entity"].(map[string]interface{})
	if !ok {
		entity = paymentData
	}
	return entity
}

func (s *PaymentLinkService) handleCaptured(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookEntity(payload)

	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	link, err := s.Repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("payment link not found: %w", err)
	}

	// Webhooks retry, settling twice would double-pay the ledger
	if link.Status == models.PaymentLinkPaid {
		log.Printf("[PaymentLink] order %s already settled", orderID)
		return nil
	}

	if err := s.Repo.MarkPaid(ctx, orderID, timeutil.Now()); err != nil {
		return err
	}

	_, err = s.Payments.RecordPayment(ctx, link.ReservationID, &models.CreatePaymentRequest{
		Amount:    link.Amount,
		Method:    models.MethodOnline,
		Reference: paymentID,
		Note:      fmt.Sprintf("Online payment, order %s", orderID),
	}, "system")
	if err != nil {
		log.Printf("[PaymentLink] order %s settled but ledger entry failed: %v", orderID, err)
	}
	return nil
}

func (s *PaymentLinkService) handleFailed(ctx context.Context, payload map[string]interface{}) error {
	entity := webhookEntity(payload)

	orderID, _ := entity["order_id"].(string)
	if orderID == "" {
		return nil
	}
	return s.Repo.UpdateStatus(ctx, orderID, models.PaymentLinkCancelled)
}
