package repositories

import (
	"context"
	"time"

	"github.com/geoads/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckoutRepo struct {
	pool *pgxpool.Pool
}

func NewCheckoutRepo(pool *pgxpool.Pool) *CheckoutRepo {
	return &CheckoutRepo{pool: pool}
}

func (r *CheckoutRepo) Create(ctx context.Context, s *models.CheckoutSession) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO checkout_sessions (campaign_id, user_id, amount, currency, provider_ref, checkout_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, s.CampaignID, s.UserID, s.Amount, s.Currency, s.ProviderRef, s.CheckoutURL, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *CheckoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error) {
	var s models.CheckoutSession
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, user_id, amount, currency, provider_ref, checkout_url, status, created_at, updated_at
		FROM checkout_sessions WHERE id = $1
	`, id).Scan(&s.ID, &s.CampaignID, &s.UserID, &s.Amount, &s.Currency,
		&s.ProviderRef, &s.CheckoutURL, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CheckoutRepo) GetByProviderRef(ctx context.Context, ref string) (*models.CheckoutSession, error) {
	var s models.CheckoutSession
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, user_id, amount, currency, provider_ref, checkout_url, status, created_at, updated_at
		FROM checkout_sessions WHERE provider_ref = $1
	`, ref).Scan(&s.ID, &s.CampaignID, &s.UserID, &s.Amount, &s.Currency,
		&s.ProviderRef, &s.CheckoutURL, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CheckoutRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE checkout_sessions SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	return err
}

// ListStalePending returns pending sessions older than the TTL, for expiry.
func (r *CheckoutRepo) ListStalePending(ctx context.Context, ttl time.Duration) ([]models.CheckoutSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, user_id, amount, currency, provider_ref, checkout_url, status, created_at, updated_at
		FROM checkout_sessions
		WHERE status = $1 AND created_at < now() - $2::interval
		LIMIT 100
	`, models.CheckoutStatusPending, ttl.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.CheckoutSession
	for rows.Next() {
		var s models.CheckoutSession
		if err := rows.Scan(&s.ID, &s.CampaignID, &s.UserID, &s.Amount, &s.Currency,
			&s.ProviderRef, &s.CheckoutURL, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
