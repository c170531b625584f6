package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type MerchandiseRepository struct {
	DB *pgxpool.Pool
}

func NewMerchandiseRepository(db *pgxpool.Pool) *MerchandiseRepository {
	return &MerchandiseRepository{DB: db}
}

func (r *MerchandiseRepository) Create(ctx context.Context, item *models.MerchandiseItem) error {
	query := `
		INSERT INTO merchandise_items (name, price, image_url, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		item.Name,
		item.Price,
		item.ImageURL,
		item.IsActive,
		item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *MerchandiseRepository) Get(ctx context.Context, id int) (*models.MerchandiseItem, error) {
	query := `
		SELECT id, name, price, COALESCE(image_url, ''), is_active, sort_order, created_at, updated_at
		FROM merchandise_items
		WHERE id = $1
	`

	item := &models.MerchandiseItem{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.ImageURL,
		&item.IsActive,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *MerchandiseRepository) List(ctx context.Context, activeOnly bool) ([]*models.MerchandiseItem, error) {
	query := `
		SELECT id, name, price, COALESCE(image_url, ''), is_active, sort_order, created_at, updated_at
		FROM merchandise_items
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MerchandiseItem
	for rows.Next() {
		item := &models.MerchandiseItem{}
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Price,
			&item.ImageURL,
			&item.IsActive,
			&item.SortOrder,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *MerchandiseRepository) Update(ctx context.Context, item *models.MerchandiseItem) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE merchandise_items SET name = $1, price = $2, image_url = $3, is_active = $4, sort_order = $5, updated_at = NOW() WHERE id = $6`,
		item.Name, item.Price, item.ImageURL, item.IsActive, item.SortOrder, item.ID)
	return err
}

// AddToReservation records a line item at the item's current price, so
// later catalog changes never affect existing bookings.
func (r *MerchandiseRepository) AddToReservation(ctx context.Context, reservationID, itemID, quantity int, unitPrice float64) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO reservation_merchandise (reservation_id, item_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
		reservationID, itemID, quantity, unitPrice)
	return err
}

type ReservationMerchandiseLine struct {
	ItemID    int     `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (r *MerchandiseRepository) ListByReservation(ctx context.Context, reservationID int) ([]ReservationMerchandiseLine, error) {
	query := `
		SELECT rm.item_id, mi.name, rm.quantity, rm.unit_price
		FROM reservation_merchandise rm
		JOIN merchandise_items mi ON rm.item_id = mi.id
		WHERE rm.reservation_id = $1
		ORDER BY mi.sort_order
	`

	rows, err := r.DB.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []ReservationMerchandiseLine
	for rows.Next() {
		var line ReservationMerchandiseLine
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
