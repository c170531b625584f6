package finance

import (
	"math"

	"theater-backend/internal/models"
)

type PaymentStatus string

const (
	StatusUnpaid   PaymentStatus = "unpaid"
	StatusPartial  PaymentStatus = "partial"
	StatusPaid     PaymentStatus = "paid"
	StatusOverpaid PaymentStatus = "overpaid"
)

// PaymentSummary is a read-time projection over a reservation's payment and
// refund ledger. It is never persisted.
type PaymentSummary struct {
	TotalPrice    float64       `json:"total_price"`
	TotalPaid     float64       `json:"total_paid"`
	TotalRefunded float64       `json:"total_refunded"`
	Balance       float64       `json:"balance"`
	NetRevenue    float64       `json:"net_revenue"`
	AmountDue     float64       `json:"amount_due"`
	Credit        float64       `json:"credit"`
	Status        PaymentStatus `json:"status"`
}

// toCents converts a two-decimal currency amount to integer cents. Sums are
// accumulated in cents so ledgers with many entries reconcile exactly.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}

// Summarize reduces the payment and refund ledgers of a reservation into a
// PaymentSummary. Pure and idempotent, no side effects.
//
// balance = totalPrice - totalPaid + totalRefunded
// netRevenue = totalPaid - totalRefunded
func Summarize(totalPrice float64, payments []models.Payment, refunds []models.Refund) PaymentSummary {
	var paid, refunded int64
	for i := range payments {
		paid += toCents(payments[i].Amount)
	}
	for i := range refunds {
		refunded += toCents(refunds[i].Amount)
	}

	price := toCents(totalPrice)
	balance := price - paid + refunded

	var status PaymentStatus
	switch {
	case balance <= 0:
		status = StatusPaid
	case balance == price:
		status = StatusUnpaid
	case balance < price:
		status = StatusPartial
	default:
		status = StatusOverpaid
	}

	s := PaymentSummary{
		TotalPrice:    fromCents(price),
		TotalPaid:     fromCents(paid),
		TotalRefunded: fromCents(refunded),
		Balance:       fromCents(balance),
		NetRevenue:    fromCents(paid - refunded),
		Status:        status,
	}
	if balance > 0 {
		s.AmountDue = fromCents(balance)
	} else {
		s.Credit = fromCents(-balance)
	}
	return s
}

// MaxRefundable returns how much can still be refunded: the net amount
// actually paid in. A refund may never exceed it.
func MaxRefundable(payments []models.Payment, refunds []models.Refund) float64 {
	var paid, refunded int64
	for i := range payments {
		paid += toCents(payments[i].Amount)
	}
	for i := range refunds {
		refunded += toCents(refunds[i].Amount)
	}
	net := paid - refunded
	if net < 0 {
		return 0
	}
	return fromCents(net)
}
