package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type ShowRepository struct {
	DB *pgxpool.Pool
}

func NewShowRepository(db *pgxpool.Pool) *ShowRepository {
	return &ShowRepository{DB: db}
}

func (r *ShowRepository) Create(ctx context.Context, show *models.Show) error {
	query := `
		INSERT INTO shows (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		show.Name,
		show.Description,
		show.IsActive,
	).Scan(&show.ID, &show.CreatedAt, &show.UpdatedAt)
}

func (r *ShowRepository) Get(ctx context.Context, id int) (*models.Show, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), is_active, created_at, updated_at
		FROM shows
		WHERE id = $1
	`

	show := &models.Show{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.Name,
		&show.Description,
		&show.IsActive,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return show, nil
}

func (r *ShowRepository) List(ctx context.Context) ([]*models.Show, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), is_active, created_at, updated_at
		FROM shows
		ORDER BY name
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shows []*models.Show
	for rows.Next() {
		show := &models.Show{}
		err := rows.Scan(
			&show.ID,
			&show.Name,
			&show.Description,
			&show.IsActive,
			&show.CreatedAt,
			&show.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}

	return shows, rows.Err()
}

func (r *ShowRepository) Update(ctx context.Context, show *models.Show) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE shows SET name = $1, description = $2, is_active = $3, updated_at = NOW() WHERE id = $4`,
		show.Name, show.Description, show.IsActive, show.ID)
	return err
}
