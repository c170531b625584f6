package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type EventRepository struct {
	DB *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `
	id, show_id, date, type, COALESCE(doors_open, ''), COALESCE(starts_at, ''), COALESCE(ends_at, ''),
	capacity, booking_opens_at, booking_cutoff, waitlist_active, is_active, created_at, updated_at
`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.ShowID,
		&event.Date,
		&event.Type,
		&event.DoorsOpen,
		&event.StartsAt,
		&event.EndsAt,
		&event.Capacity,
		&event.BookingOpensAt,
		&event.BookingCutoff,
		&event.WaitlistActive,
		&event.IsActive,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (show_id, date, type, doors_open, starts_at, ends_at, capacity,
			booking_opens_at, booking_cutoff, waitlist_active, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		event.ShowID,
		event.Date,
		event.Type,
		event.DoorsOpen,
		event.StartsAt,
		event.EndsAt,
		event.Capacity,
		event.BookingOpensAt,
		event.BookingCutoff,
		event.WaitlistActive,
		event.IsActive,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *EventRepository) Get(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRow(ctx, query, id))
}

func (r *EventRepository) List(ctx context.Context, from, to *time.Time) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := []any{}

	if from != nil {
		args = append(args, *from)
		query += ` AND date >= $1`
	}
	if to != nil {
		args = append(args, *to)
		if len(args) == 1 {
			query += ` AND date <= $1`
		} else {
			query += ` AND date <= $2`
		}
	}
	query += ` ORDER BY date`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date >= $1 AND is_active = TRUE ORDER BY date`

	rows, err := r.DB.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET type = $1, doors_open = $2, starts_at = $3, ends_at = $4, capacity = $5,
			booking_opens_at = $6, booking_cutoff = $7, waitlist_active = $8, is_active = $9,
			updated_at = NOW()
		WHERE id = $10
	`

	_, err := r.DB.Exec(ctx, query,
		event.Type,
		event.DoorsOpen,
		event.StartsAt,
		event.EndsAt,
		event.Capacity,
		event.BookingOpensAt,
		event.BookingCutoff,
		event.WaitlistActive,
		event.IsActive,
		event.ID,
	)
	return err
}
