package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

// SaveSecret stores a pending TOTP secret for a user, replacing any
// previous one that was never confirmed.
func (r *TOTPRepository) SaveSecret(ctx context.Context, userID int, secret string) error {
	query := `
		INSERT INTO user_totp (user_id, secret, confirmed)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (user_id) DO UPDATE SET secret = $2, confirmed = FALSE
	`
	_, err := r.DB.Exec(ctx, query, userID, secret)
	return err
}

func (r *TOTPRepository) GetSecret(ctx context.Context, userID int) (secret string, confirmed bool, err error) {
	query := `SELECT secret, confirmed FROM user_totp WHERE user_id = $1`
	err = r.DB.QueryRow(ctx, query, userID).Scan(&secret, &confirmed)
	return secret, confirmed, err
}

func (r *TOTPRepository) Confirm(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `UPDATE user_totp SET confirmed = TRUE WHERE user_id = $1`, userID)
	return err
}

func (r *TOTPRepository) Delete(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM user_totp WHERE user_id = $1`, userID)
	return err
}
