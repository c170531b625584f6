package services

import (
	"context"
	"fmt"

	"theater-backend/internal/cache"
	"theater-backend/internal/finance"
	"theater-backend/internal/metrics"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
	"theater-backend/internal/timeutil"
)

type PaymentService struct {
	Repo            *repositories.PaymentRepository
	ReservationRepo *repositories.ReservationRepository
	AuditService    *AuditService
}

func NewPaymentService(repo *repositories.PaymentRepository, reservationRepo *repositories.ReservationRepository, auditService *AuditService) *PaymentService {
	return &PaymentService{Repo: repo, ReservationRepo: reservationRepo, AuditService: auditService}
}

// RecordPayment appends an entry to the reservation's ledger. Payments are
// immutable, there is no update or delete.
func (s *PaymentService) RecordPayment(ctx context.Context, reservationID int, req *models.CreatePaymentRequest, processedBy string) (*models.Payment, error) {
	if _, err := s.ReservationRepo.Get(ctx, reservationID); err != nil {
		return nil, fmt.Errorf("reservation not found: %w", err)
	}

	paidAt := timeutil.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	payment := &models.Payment{
		ReservationID: reservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		Category:      req.Category,
		Reference:     req.Reference,
		Note:          req.Note,
		ProcessedBy:   processedBy,
		PaidAt:        paidAt,
	}

	if err := s.Repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(payment.Method)).Inc()
	cache.InvalidatePaymentCaches(ctx)

	s.AuditService.Record(ctx, processedBy, "payment.recorded", "reservation", reservationID,
		fmt.Sprintf("%s %.2f via %s", payment.ReceiptNumber, payment.Amount, payment.Method))

	return payment, nil
}

// RecordRefund appends a refund. A refund may never exceed the net amount
// actually paid in.
func (s *PaymentService) RecordRefund(ctx context.Context, reservationID int, req *models.CreateRefundRequest, processedBy string) (*models.Refund, error) {
	if _, err := s.ReservationRepo.Get(ctx, reservationID); err != nil {
		return nil, fmt.Errorf("reservation not found: %w", err)
	}

	payments, err := s.Repo.ListPaymentsByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	refunds, err := s.Repo.ListRefundsByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if max := finance.MaxRefundable(payments, refunds); req.Amount > max {
		return nil, fmt.Errorf("refund of %.2f exceeds refundable amount of %.2f", req.Amount, max)
	}

	refund := &models.Refund{
		ReservationID: reservationID,
		Amount:        req.Amount,
		Reason:        req.Reason,
		Method:        req.Method,
		Reference:     req.Reference,
		Note:          req.Note,
		ProcessedBy:   processedBy,
		RefundedAt:    timeutil.Now(),
	}

	if err := s.Repo.CreateRefund(ctx, refund); err != nil {
		return nil, err
	}

	metrics.RefundsRecorded.WithLabelValues(string(refund.Reason)).Inc()
	cache.InvalidatePaymentCaches(ctx)

	s.AuditService.Record(ctx, processedBy, "refund.recorded", "reservation", reservationID,
		fmt.Sprintf("%s %.2f (%s)", refund.ReceiptNumber, refund.Amount, refund.Reason))

	return refund, nil
}

// Summary recomputes the payment summary from the ledger. It is derived on
// every call, never stored.
func (s *PaymentService) Summary(ctx context.Context, reservationID int) (*finance.PaymentSummary, error) {
	res, err := s.ReservationRepo.Get(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("reservation not found: %w", err)
	}

	payments, err := s.Repo.ListPaymentsByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	refunds, err := s.Repo.ListRefundsByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	summary := finance.Summarize(res.TotalPrice, payments, refunds)
	return &summary, nil
}

// MarkPaid settles the open balance by appending a balancing payment. Used
// by the bulk mark-paid action. A reservation with no open balance is left
// untouched.
func (s *PaymentService) MarkPaid(ctx context.Context, reservationID int, method models.PaymentMethod, processedBy string) error {
	summary, err := s.Summary(ctx, reservationID)
	if err != nil {
		return err
	}

	if summary.AmountDue <= 0 {
		return nil
	}

	_, err = s.RecordPayment(ctx, reservationID, &models.CreatePaymentRequest{
		Amount: summary.AmountDue,
		Method: method,
		Note:   "Balance settled via mark paid",
	}, processedBy)
	return err
}

// Ledger returns the full payment and refund history for a reservation.
func (s *PaymentService) Ledger(ctx context.Context, reservationID int) ([]models.Payment, []models.Refund, error) {
	payments, err := s.Repo.ListPaymentsByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	refunds, err := s.Repo.ListRefundsByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	return payments, refunds, nil
}
