package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type ArchiveRepository struct {
	DB *pgxpool.Pool
}

func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{DB: db}
}

func (r *ArchiveRepository) Create(ctx context.Context, archived *models.ArchivedReservation) error {
	query := `
		INSERT INTO archived_reservations (reservation_id, event_id, email, snapshot, reason, archived_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, archived_at
	`

	return r.DB.QueryRow(ctx, query,
		archived.ReservationID,
		archived.EventID,
		archived.Email,
		archived.Snapshot,
		archived.Reason,
		archived.ArchivedBy,
	).Scan(&archived.ID, &archived.ArchivedAt)
}

func (r *ArchiveRepository) List(ctx context.Context, limit, offset int) ([]*models.ArchivedReservation, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, reservation_id, event_id, email, snapshot, COALESCE(reason, ''), COALESCE(archived_by, ''), archived_at
		FROM archived_reservations
		ORDER BY archived_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archives []*models.ArchivedReservation
	for rows.Next() {
		a := &models.ArchivedReservation{}
		err := rows.Scan(
			&a.ID,
			&a.ReservationID,
			&a.EventID,
			&a.Email,
			&a.Snapshot,
			&a.Reason,
			&a.ArchivedBy,
			&a.ArchivedAt,
		)
		if err != nil {
			return nil, err
		}
		archives = append(archives, a)
	}

	return archives, rows.Err()
}

func (r *ArchiveRepository) GetByReservationID(ctx context.Context, reservationID int) (*models.ArchivedReservation, error) {
	query := `
		SELECT id, reservation_id, event_id, email, snapshot, COALESCE(reason, ''), COALESCE(archived_by, ''), archived_at
		FROM archived_reservations
		WHERE reservation_id = $1
		ORDER BY archived_at DESC
		LIMIT 1
	`

	a := &models.ArchivedReservation{}
	err := r.DB.QueryRow(ctx, query, reservationID).Scan(
		&a.ID,
		&a.ReservationID,
		&a.EventID,
		&a.Email,
		&a.Snapshot,
		&a.Reason,
		&a.ArchivedBy,
		&a.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}

	return a, nil
}
