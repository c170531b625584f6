package services

import (
	"context"
	"fmt"

	"theater-backend/internal/metrics"
	"theater-backend/internal/models"
)

// BulkFailure records one failed item in a batch.
type BulkFailure struct {
	ID    int    `json:"id"`
	Error string `json:"error"`
}

// BulkResult reports the outcome of a best-effort batch: how many items
// succeeded and which ones failed. There is no rollback, items applied
// before a failure stay applied.
type BulkResult struct {
	Requested int           `json:"requested"`
	Succeeded int           `json:"succeeded"`
	Failures  []BulkFailure `json:"failures,omitempty"`
}

// BulkService applies one action to many reservations sequentially,
// collecting failures without aborting the batch.
type BulkService struct {
	Reservations *ReservationService
	Payments     *PaymentService
}

func NewBulkService(reservations *ReservationService, payments *PaymentService) *BulkService {
	return &BulkService{Reservations: reservations, Payments: payments}
}

func (s *BulkService) apply(ctx context.Context, ids []int, action func(ctx context.Context, id int) error) BulkResult {
	result := BulkResult{Requested: len(ids)}
	for _, id := range ids {
		if err := action(ctx, id); err != nil {
			result.Failures = append(result.Failures, BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Succeeded++
	}
	return result
}

func (s *BulkService) Confirm(ctx context.Context, ids []int, actor string) BulkResult {
	result := s.apply(ctx, ids, func(ctx context.Context, id int) error {
		return s.Reservations.Confirm(ctx, id, actor)
	})
	metrics.BulkActions.WithLabelValues("confirm").Add(float64(result.Succeeded))
	return result
}

func (s *BulkService) Reject(ctx context.Context, ids []int, actor string) BulkResult {
	result := s.apply(ctx, ids, func(ctx context.Context, id int) error {
		return s.Reservations.Reject(ctx, id, actor)
	})
	metrics.BulkActions.WithLabelValues("reject").Add(float64(result.Succeeded))
	return result
}

func (s *BulkService) Delete(ctx context.Context, ids []int, reason, actor string) BulkResult {
	result := s.apply(ctx, ids, func(ctx context.Context, id int) error {
		return s.Reservations.Delete(ctx, id, reason, actor)
	})
	metrics.BulkActions.WithLabelValues("delete").Add(float64(result.Succeeded))
	return result
}

// MarkPaid settles open balances by appending balancing payments.
func (s *BulkService) MarkPaid(ctx context.Context, ids []int, method models.PaymentMethod, actor string) BulkResult {
	result := s.apply(ctx, ids, func(ctx context.Context, id int) error {
		return s.Payments.MarkPaid(ctx, id, method, actor)
	})
	metrics.BulkActions.WithLabelValues("mark_paid").Add(float64(result.Succeeded))
	return result
}

// Summary renders a one-line outcome for the admin toast.
func (r BulkResult) Summary() string {
	if len(r.Failures) == 0 {
		return fmt.Sprintf("%d of %d succeeded", r.Succeeded, r.Requested)
	}
	return fmt.Sprintf("%d of %d succeeded, %d failed", r.Succeeded, r.Requested, len(r.Failures))
}
