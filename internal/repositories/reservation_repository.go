package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type ReservationRepository struct {
	DB *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

const reservationColumns = `
	r.id, r.public_id, r.event_id, e.date, r.status, r.contact_person, COALESCE(r.company_name, ''),
	r.email, COALESCE(r.phone, ''), COALESCE(r.address, ''), COALESCE(r.city, ''), COALESCE(r.postal_code, ''),
	r.number_of_persons, r.arrangement, r.pre_drink_count, r.after_party_count,
	COALESCE(r.dietary_notes, ''), COALESCE(r.celebration_note, ''), r.total_price, r.pricing_snapshot,
	r.payment_due_date, r.requested_over_capacity, r.tags, COALESCE(r.notes, ''),
	r.option_expires_at, COALESCE(r.option_placed_by, ''), r.checked_in_at, COALESCE(r.checked_in_by, ''),
	r.created_at, r.updated_at
`

func scanReservation(row interface{ Scan(...any) error }) (*models.Reservation, error) {
	res := &models.Reservation{}
	err := row.Scan(
		&res.ID,
		&res.PublicID,
		&res.EventID,
		&res.EventDate,
		&res.Status,
		&res.ContactPerson,
		&res.CompanyName,
		&res.Email,
		&res.Phone,
		&res.Address,
		&res.City,
		&res.PostalCode,
		&res.NumberOfPersons,
		&res.Arrangement,
		&res.PreDrinkCount,
		&res.AfterPartyCount,
		&res.DietaryNotes,
		&res.CelebrationNote,
		&res.TotalPrice,
		&res.PricingSnapshot,
		&res.PaymentDueDate,
		&res.RequestedOverCapacity,
		&res.Tags,
		&res.Notes,
		&res.OptionExpiresAt,
		&res.OptionPlacedBy,
		&res.CheckedInAt,
		&res.CheckedInBy,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	query := `
		INSERT INTO reservations (public_id, event_id, status, contact_person, company_name, email, phone,
			address, city, postal_code, number_of_persons, arrangement, pre_drink_count, after_party_count,
			dietary_notes, celebration_note, total_price, pricing_snapshot, payment_due_date,
			requested_over_capacity, tags, notes, option_expires_at, option_placed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		res.PublicID,
		res.EventID,
		res.Status,
		res.ContactPerson,
		res.CompanyName,
		res.Email,
		res.Phone,
		res.Address,
		res.City,
		res.PostalCode,
		res.NumberOfPersons,
		res.Arrangement,
		res.PreDrinkCount,
		res.AfterPartyCount,
		res.DietaryNotes,
		res.CelebrationNote,
		res.TotalPrice,
		res.PricingSnapshot,
		res.PaymentDueDate,
		res.RequestedOverCapacity,
		res.Tags,
		res.Notes,
		res.OptionExpiresAt,
		res.OptionPlacedBy,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *ReservationRepository) Get(ctx context.Context, id int) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations r JOIN events e ON r.event_id = e.id WHERE r.id = $1`
	return scanReservation(r.DB.QueryRow(ctx, query, id))
}

func (r *ReservationRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations r JOIN events e ON r.event_id = e.id WHERE r.public_id = $1`
	return scanReservation(r.DB.QueryRow(ctx, query, publicID))
}

func (r *ReservationRepository) List(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations r JOIN events e ON r.event_id = e.id WHERE 1=1`
	args := []any{}

	if filter.EventID > 0 {
		args = append(args, filter.EventID)
		query += fmt.Sprintf(" AND r.event_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (r.contact_person ILIKE $%d OR r.email ILIKE $%d OR r.company_name ILIKE $%d)", len(args), len(args), len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND e.date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND e.date <= $%d", len(args))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		query += fmt.Sprintf(" AND $%d = ANY(r.tags)", len(args))
	}

	query += " ORDER BY r.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *ReservationRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Reservation, error) {
	return r.List(ctx, models.ReservationFilter{EventID: eventID})
}

func (r *ReservationRepository) ListByEmail(ctx context.Context, email string) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations r JOIN events e ON r.event_id = e.id WHERE r.email = $1 ORDER BY e.date DESC`

	rows, err := r.DB.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *ReservationRepository) Update(ctx context.Context, res *models.Reservation) error {
	query := `
		UPDATE reservations
		SET contact_person = $1, company_name = $2, email = $3, phone = $4, address = $5,
			city = $6, postal_code = $7, number_of_persons = $8, arrangement = $9,
			pre_drink_count = $10, after_party_count = $11, dietary_notes = $12,
			celebration_note = $13, total_price = $14, pricing_snapshot = $15,
			payment_due_date = $16, tags = $17, notes = $18, updated_at = NOW()
		WHERE id = $19
	`

	_, err := r.DB.Exec(ctx, query,
		res.ContactPerson,
		res.CompanyName,
		res.Email,
		res.Phone,
		res.Address,
		res.City,
		res.PostalCode,
		res.NumberOfPersons,
		res.Arrangement,
		res.PreDrinkCount,
		res.AfterPartyCount,
		res.DietaryNotes,
		res.CelebrationNote,
		res.TotalPrice,
		res.PricingSnapshot,
		res.PaymentDueDate,
		res.Tags,
		res.Notes,
		res.ID,
	)
	return err
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int, status models.ReservationStatus) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	return err
}

func (r *ReservationRepository) SetCheckedIn(ctx context.Context, id int, at time.Time, by string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE reservations SET status = $1, checked_in_at = $2, checked_in_by = $3, updated_at = NOW() WHERE id = $4`,
		models.StatusCheckedIn, at, by, id)
	return err
}

func (r *ReservationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	return err
}

// ListExpiredOptions returns option holds whose expiry has passed, for the
// background sweeper.
func (r *ReservationRepository) ListExpiredOptions(ctx context.Context, now time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations r JOIN events e ON r.event_id = e.id
		WHERE r.status = $1 AND r.option_expires_at IS NOT NULL AND r.option_expires_at < $2`

	rows, err := r.DB.Query(ctx, query, models.StatusOption, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}
