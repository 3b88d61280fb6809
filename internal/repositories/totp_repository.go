package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roastery-backend/internal/models"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

// Upsert stores a fresh, unconfirmed secret for the user, replacing any
// previous one.
func (r *TOTPRepository) Upsert(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO user_totp(user_id, secret, confirmed)
         VALUES($1, $2, FALSE)
         ON CONFLICT (user_id) DO UPDATE SET secret = EXCLUDED.secret, confirmed = FALSE`,
		userID, secret)
	return err
}

// Get returns (nil, nil) when the user has no TOTP secret.
func (r *TOTPRepository) Get(ctx context.Context, userID int) (*models.TOTPSecret, error) {
	var t models.TOTPSecret
	err := r.DB.QueryRow(ctx,
		`SELECT user_id, secret, confirmed, created_at FROM user_totp WHERE user_id=$1`,
		userID,
	).Scan(&t.UserID, &t.Secret, &t.Confirmed, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TOTPRepository) Confirm(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE user_totp SET confirmed = TRUE WHERE user_id=$1`, userID)
	return err
}

func (r *TOTPRepository) Delete(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM user_totp WHERE user_id=$1`, userID)
	return err
}
