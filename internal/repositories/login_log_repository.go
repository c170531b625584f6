package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"theater-backend/internal/models"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

func (r *LoginLogRepository) Create(ctx context.Context, entry *models.LoginLog) error {
	query := `
		INSERT INTO login_logs (user_id, email, success, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		entry.UserID,
		entry.Email,
		entry.Success,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *LoginLogRepository) List(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, user_id, email, success, COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at
		FROM login_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		entry := &models.LoginLog{}
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Email,
			&entry.Success,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
