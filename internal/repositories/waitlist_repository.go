package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type WaitlistRepository struct {
	DB *pgxpool.Pool
}

func NewWaitlistRepository(db *pgxpool.Pool) *WaitlistRepository {
	return &WaitlistRepository{DB: db}
}

const waitlistColumns = `
	id, event_id, status, contact_person, email, COALESCE(phone, ''), number_of_persons,
	priority, COALESCE(notes, ''), contacted_at, COALESCE(contacted_by, ''),
	converted_reservation_id, created_at, updated_at
`

func scanWaitlistEntry(row interface{ Scan(...any) error }) (*models.WaitlistEntry, error) {
	entry := &models.WaitlistEntry{}
	err := row.Scan(
		&entry.ID,
		&entry.EventID,
		&entry.Status,
		&entry.ContactPerson,
		&entry.Email,
		&entry.Phone,
		&entry.NumberOfPersons,
		&entry.Priority,
		&entry.Notes,
		&entry.ContactedAt,
		&entry.ContactedBy,
		&entry.ConvertedReservationID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *WaitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	query := `
		INSERT INTO waitlist_entries (event_id, status, contact_person, email, phone, number_of_persons, priority, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		entry.EventID,
		entry.Status,
		entry.ContactPerson,
		entry.Email,
		entry.Phone,
		entry.NumberOfPersons,
		entry.Priority,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *WaitlistRepository) Get(ctx context.Context, id int) (*models.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE id = $1`
	return scanWaitlistEntry(r.DB.QueryRow(ctx, query, id))
}

func (r *WaitlistRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE event_id = $1 ORDER BY priority DESC, created_at`

	rows, err := r.DB.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.WaitlistEntry
	for rows.Next() {
		entry, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *WaitlistRepository) UpdateStatus(ctx context.Context, id int, status models.WaitlistStatus) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE waitlist_entries SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	return err
}

func (r *WaitlistRepository) MarkContacted(ctx context.Context, id int, at time.Time, by string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE waitlist_entries SET status = $1, contacted_at = $2, contacted_by = $3, updated_at = NOW() WHERE id = $4`,
		models.WaitlistContacted, at, by, id)
	return err
}

func (r *WaitlistRepository) MarkConverted(ctx context.Context, id, reservationID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE waitlist_entries SET status = $1, converted_reservation_id = $2, updated_at = NOW() WHERE id = $3`,
		models.WaitlistConverted, reservationID, id)
	return err
}

func (r *WaitlistRepository) SetPriority(ctx context.Context, id, priority int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE waitlist_entries SET priority = $1, updated_at = NOW() WHERE id = $2`,
		priority, id)
	return err
}
