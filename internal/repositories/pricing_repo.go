package repositories

import (
	"context"

	"github.com/geoads/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PricingRepo holds the pricing reference data: industries, ad formats and
// duration discount tiers.
type PricingRepo struct {
	pool *pgxpool.Pool
}

func NewPricingRepo(pool *pgxpool.Pool) *PricingRepo {
	return &PricingRepo{pool: pool}
}

func (r *PricingRepo) ListIndustries(ctx context.Context) ([]models.Industry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, multiplier, created_at, updated_at FROM industries ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var industries []models.Industry
	for rows.Next() {
		var ind models.Industry
		if err := rows.Scan(&ind.ID, &ind.Name, &ind.Multiplier, &ind.CreatedAt, &ind.UpdatedAt); err != nil {
			return nil, err
		}
		industries = append(industries, ind)
	}
	return industries, rows.Err()
}

func (r *PricingRepo) GetIndustry(ctx context.Context, id uuid.UUID) (*models.Industry, error) {
	var ind models.Industry
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, multiplier, created_at, updated_at FROM industries WHERE id = $1
	`, id).Scan(&ind.ID, &ind.Name, &ind.Multiplier, &ind.CreatedAt, &ind.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ind, nil
}

func (r *PricingRepo) CreateIndustry(ctx context.Context, ind *models.Industry) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO industries (name, multiplier) VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, ind.Name, ind.Multiplier).Scan(&ind.ID, &ind.CreatedAt, &ind.UpdatedAt)
}

func (r *PricingRepo) UpdateIndustry(ctx context.Context, ind *models.Industry) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE industries SET name = $1, multiplier = $2, updated_at = now() WHERE id = $3
	`, ind.Name, ind.Multiplier, ind.ID)
	return err
}

func (r *PricingRepo) ListAdFormats(ctx context.Context) ([]models.AdFormat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, base_rate, created_at, updated_at FROM ad_formats ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formats []models.AdFormat
	for rows.Next() {
		var f models.AdFormat
		if err := rows.Scan(&f.ID, &f.Name, &f.BaseRate, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

func (r *PricingRepo) GetAdFormat(ctx context.Context, id uuid.UUID) (*models.AdFormat, error) {
	var f models.AdFormat
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, base_rate, created_at, updated_at FROM ad_formats WHERE id = $1
	`, id).Scan(&f.ID, &f.Name, &f.BaseRate, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PricingRepo) CreateAdFormat(ctx context.Context, f *models.AdFormat) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO ad_formats (name, base_rate) VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, f.Name, f.BaseRate).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PricingRepo) UpdateAdFormat(ctx context.Context, f *models.AdFormat) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE ad_formats SET name = $1, base_rate = $2, updated_at = now() WHERE id = $3
	`, f.Name, f.BaseRate, f.ID)
	return err
}

func (r *PricingRepo) ListDiscountTiers(ctx context.Context) ([]models.DiscountTier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT duration_months, rate FROM discount_tiers ORDER BY duration_months ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []models.DiscountTier
	for rows.Next() {
		var t models.DiscountTier
		if err := rows.Scan(&t.DurationMonths, &t.Rate); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (r *PricingRepo) UpsertDiscountTier(ctx context.Context, t models.DiscountTier) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO discount_tiers (duration_months, rate) VALUES ($1, $2)
		ON CONFLICT (duration_months) DO UPDATE SET rate = EXCLUDED.rate
	`, t.DurationMonths, t.Rate)
	return err
}
