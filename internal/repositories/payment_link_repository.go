package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type PaymentLinkRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentLinkRepository(db *pgxpool.Pool) *PaymentLinkRepository {
	return &PaymentLinkRepository{DB: db}
}

func (r *PaymentLinkRepository) Create(ctx context.Context, link *models.PaymentLink) error {
	query := `
		INSERT INTO payment_links (reservation_id, order_id, short_url, amount, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		link.ReservationID,
		link.OrderID,
		link.ShortURL,
		link.Amount,
		link.Status,
		link.CreatedBy,
	).Scan(&link.ID, &link.CreatedAt)
}

func (r *PaymentLinkRepository) GetByOrderID(ctx context.Context, orderID string) (*models.PaymentLink, error) {
	query := `
		SELECT id, reservation_id, order_id, COALESCE(short_url, ''), amount, status, COALESCE(created_by, ''), created_at, paid_at
		FROM payment_links
		WHERE order_id = $1
	`

	link := &models.PaymentLink{}
	err := r.DB.QueryRow(ctx, query, orderID).Scan(
		&link.ID,
		&link.ReservationID,
		&link.OrderID,
		&link.ShortURL,
		&link.Amount,
		&link.Status,
		&link.CreatedBy,
		&link.CreatedAt,
		&link.PaidAt,
	)
	if err != nil {
		return nil, err
	}

	return link, nil
}

func (r *PaymentLinkRepository) MarkPaid(ctx context.Context, orderID string, paidAt time.Time) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE payment_links SET status = $1, paid_at = $2 WHERE order_id = $3`,
		models.PaymentLinkPaid, paidAt, orderID)
	return err
}

func (r *PaymentLinkRepository) UpdateStatus(ctx context.Context, orderID string, status models.PaymentLinkStatus) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE payment_links SET status = $1 WHERE order_id = $2`,
		status, orderID)
	return err
}

func (r *PaymentLinkRepository) ListByReservation(ctx context.Context, reservationID int) ([]*models.PaymentLink, error) {
	query := `
		SELECT id, reservation_id, order_id, COALESCE(short_url, ''), amount, status, COALESCE(created_by, ''), created_at, paid_at
		FROM payment_links
		WHERE reservation_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.PaymentLink
	for rows.Next() {
		link := &models.PaymentLink{}
		err := rows.Scan(
			&link.ID,
			&link.ReservationID,
			&link.OrderID,
			&link.ShortURL,
			&link.Amount,
			&link.Status,
			&link.CreatedBy,
			&link.CreatedAt,
			&link.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}
