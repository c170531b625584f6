package finance

import (
	"testing"

	"theater-backend/internal/models"
)

func payments(amounts ...float64) []models.Payment {
	out := make([]models.Payment, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, models.Payment{Amount: a})
	}
	return out
}

func refunds(amounts ...float64) []models.Refund {
	out := make([]models.Refund, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, models.Refund{Amount: a})
	}
	return out
}

func TestSummarizeScenarios(t *testing.T) {
	tests := []struct {
		name       string
		totalPrice float64
		payments   []models.Payment
		refunds    []models.Refund
		want       PaymentSummary
	}{
		{
			name:       "partial with refund",
			totalPrice: 500,
			payments:   payments(300),
			refunds:    refunds(50),
			want: PaymentSummary{
				TotalPrice: 500, TotalPaid: 300, TotalRefunded: 50,
				Balance: 250, NetRevenue: 250, AmountDue: 250,
				Status: StatusPartial,
			},
		},
		{
			name:       "exactly paid",
			totalPrice: 200,
			payments:   payments(200),
			want: PaymentSummary{
				TotalPrice: 200, TotalPaid: 200,
				Balance: 0, NetRevenue: 200,
				Status: StatusPaid,
			},
		},
		{
			name:       "untouched ledger is unpaid",
			totalPrice: 150,
			want: PaymentSummary{
				TotalPrice: 150, Balance: 150, AmountDue: 150,
				Status: StatusUnpaid,
			},
		},
		{
			name:       "overpaid carries credit",
			totalPrice: 100,
			payments:   payments(120),
			want: PaymentSummary{
				TotalPrice: 100, TotalPaid: 120,
				Balance: -20, NetRevenue: 120, Credit: 20,
				Status: StatusPaid,
			},
		},
		{
			name:       "refund beyond price is overpaid status",
			totalPrice: 100,
			payments:   payments(100),
			refunds:    refunds(120),
			want: PaymentSummary{
				TotalPrice: 100, TotalPaid: 100, TotalRefunded: 120,
				Balance: 120, NetRevenue: -20, AmountDue: 120,
				Status: StatusOverpaid,
			},
		},
		{
			name:       "zero price zero ledger is paid",
			totalPrice: 0,
			want: PaymentSummary{
				Status: StatusPaid,
			},
		},
		{
			name:       "full refund resets to unpaid",
			totalPrice: 300,
			payments:   payments(300),
			refunds:    refunds(300),
			want: PaymentSummary{
				TotalPrice: 300, TotalPaid: 300, TotalRefunded: 300,
				Balance: 300, AmountDue: 300,
				Status: StatusUnpaid,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.totalPrice, tt.payments, tt.refunds)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Boundary ordering at balance == totalPrice must resolve to unpaid, and the
// partial band is strictly between zero and the total price.
func TestSummarizeStatusBoundaries(t *testing.T) {
	if s := Summarize(100, payments(0.01), nil); s.Status != StatusPartial {
		t.Errorf("one cent paid: status = %s, want partial", s.Status)
	}
	if s := Summarize(100, payments(99.99), nil); s.Status != StatusPartial {
		t.Errorf("one cent short: status = %s, want partial", s.Status)
	}
	if s := Summarize(100, payments(100), refunds(100)); s.Status != StatusUnpaid {
		t.Errorf("netted to zero: status = %s, want unpaid", s.Status)
	}
	if s := Summarize(100, payments(100.01), nil); s.Status != StatusPaid {
		t.Errorf("one cent over: status = %s, want paid", s.Status)
	}
}

// Two-decimal amounts summed over 10,000 entries must reconcile exactly,
// with no floating point drift.
func TestSummarizeNoRoundingDrift(t *testing.T) {
	const n = 10000
	ledger := make([]models.Payment, n)
	for i := range ledger {
		ledger[i] = models.Payment{Amount: 0.01}
	}
	s := Summarize(100, ledger, nil)
	if s.TotalPaid != 100 {
		t.Fatalf("totalPaid = %v, want exactly 100", s.TotalPaid)
	}
	if s.Balance != 0 {
		t.Fatalf("balance = %v, want exactly 0", s.Balance)
	}
	if s.Status != StatusPaid {
		t.Fatalf("status = %s, want paid", s.Status)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	p := payments(19.99, 0.02, 130.45)
	r := refunds(10.1)
	first := Summarize(250.5, p, r)
	second := Summarize(250.5, p, r)
	if first != second {
		t.Errorf("summaries differ across calls: %+v vs %+v", first, second)
	}
}

func TestMaxRefundable(t *testing.T) {
	tests := []struct {
		name     string
		payments []models.Payment
		refunds  []models.Refund
		want     float64
	}{
		{"nothing paid", nil, nil, 0},
		{"fully available", payments(300), nil, 300},
		{"partially refunded", payments(300), refunds(100), 200},
		{"already refunded in full", payments(300), refunds(300), 0},
		{"over refunded clamps to zero", payments(100), refunds(150), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxRefundable(tt.payments, tt.refunds); got != tt.want {
				t.Errorf("MaxRefundable() = %v, want %v", got, tt.want)
			}
		})
	}
}
