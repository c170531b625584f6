package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// GenerateReceiptNumber draws from a database sequence so numbers stay
// unique across concurrent admins.
func (r *PaymentRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('receipt_number_seq')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next receipt number: %w", err)
	}

	return fmt.Sprintf("RCP-%06d", nextNum), nil
}

// CheckDuplicatePayment reports whether an identical amount was recorded on
// the same reservation within the last 10 seconds, to catch double submits.
func (r *PaymentRepository) CheckDuplicatePayment(ctx context.Context, reservationID int, amount float64) (bool, error) {
	query := `
		SELECT COUNT(*) FROM payments
		WHERE reservation_id = $1
		AND amount = $2
		AND created_at > NOW() - INTERVAL '10 seconds'
	`
	var count int
	err := r.DB.QueryRow(ctx, query, reservationID, amount).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	isDuplicate, err := r.CheckDuplicatePayment(ctx, payment.ReservationID, payment.Amount)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate payment: %w", err)
	}
	if isDuplicate {
		return fmt.Errorf("duplicate payment detected: a payment of %.2f for this reservation was already processed within the last 10 seconds", payment.Amount)
	}

	receiptNumber, err := r.GenerateReceiptNumber(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payments (reservation_id, receipt_number, amount, method, category, reference, note, processed_by, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err = r.DB.QueryRow(ctx, query,
		payment.ReservationID,
		receiptNumber,
		payment.Amount,
		payment.Method,
		payment.Category,
		payment.Reference,
		payment.Note,
		payment.ProcessedBy,
		payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		return err
	}

	payment.ReceiptNumber = receiptNumber
	return nil
}

func (r *PaymentRepository) CreateRefund(ctx context.Context, refund *models.Refund) error {
	receiptNumber, err := r.GenerateReceiptNumber(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO refunds (reservation_id, receipt_number, amount, reason, method, reference, note, processed_by, refunded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err = r.DB.QueryRow(ctx, query,
		refund.ReservationID,
		receiptNumber,
		refund.Amount,
		refund.Reason,
		refund.Method,
		refund.Reference,
		refund.Note,
		refund.ProcessedBy,
		refund.RefundedAt,
	).Scan(&refund.ID, &refund.CreatedAt)

	if err != nil {
		return err
	}

	refund.ReceiptNumber = receiptNumber
	return nil
}

func (r *PaymentRepository) ListPaymentsByReservation(ctx context.Context, reservationID int) ([]models.Payment, error) {
	query := `
		SELECT id, reservation_id, receipt_number, amount, method, COALESCE(category, ''),
		       COALESCE(reference, ''), COALESCE(note, ''), COALESCE(processed_by, ''), paid_at, created_at
		FROM payments
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	rows, err := r.DB.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(
			&p.ID,
			&p.ReservationID,
			&p.ReceiptNumber,
			&p.Amount,
			&p.Method,
			&p.Category,
			&p.Reference,
			&p.Note,
			&p.ProcessedBy,
			&p.PaidAt,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *PaymentRepository) ListRefundsByReservation(ctx context.Context, reservationID int) ([]models.Refund, error) {
	query := `
		SELECT id, reservation_id, receipt_number, amount, reason, method,
		       COALESCE(reference, ''), COALESCE(note, ''), COALESCE(processed_by, ''), refunded_at, created_at
		FROM refunds
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	rows, err := r.DB.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refunds []models.Refund
	for rows.Next() {
		var rf models.Refund
		err := rows.Scan(
			&rf.ID,
			&rf.ReservationID,
			&rf.ReceiptNumber,
			&rf.Amount,
			&rf.Reason,
			&rf.Method,
			&rf.Reference,
			&rf.Note,
			&rf.ProcessedBy,
			&rf.RefundedAt,
			&rf.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, rf)
	}

	return refunds, rows.Err()
}

// RevenueBetween sums payments minus refunds inside a date range, grouped in
// the database rather than in Go.
func (r *PaymentRepository) RevenueBetween(ctx context.Context, from, to time.Time) (paid, refunded float64, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE paid_at >= $1 AND paid_at < $2`,
		from, to).Scan(&paid)
	if err != nil {
		return 0, 0, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM refunds WHERE refunded_at >= $1 AND refunded_at < $2`,
		from, to).Scan(&refunded)
	if err != nil {
		return 0, 0, err
	}

	return paid, refunded, nil
}

func (r *PaymentRepository) ListPaymentsBetween(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	query := `
		SELECT id, reservation_id, receipt_number, amount, method, COALESCE(category, ''),
		       COALESCE(reference, ''), COALESCE(note, ''), COALESCE(processed_by, ''), paid_at, created_at
		FROM payments
		WHERE paid_at >= $1 AND paid_at < $2
		ORDER BY paid_at
	`

	rows, err := r.DB.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(
			&p.ID,
			&p.ReservationID,
			&p.ReceiptNumber,
			&p.Amount,
			&p.Method,
			&p.Category,
			&p.Reference,
			&p.Note,
			&p.ProcessedBy,
			&p.PaidAt,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
