package repositories

import (
	"context"

	"github.com/geoads/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegionRepo struct {
	pool *pgxpool.Pool
}

func NewRegionRepo(pool *pgxpool.Pool) *RegionRepo {
	return &RegionRepo{pool: pool}
}

func (r *RegionRepo) Create(ctx context.Context, region *models.Region) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO regions (name, state_code, country_code, population, land_area_sq_mi, density_multiplier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, region.Name, region.StateCode, region.CountryCode, region.Population,
		region.LandAreaSqMi, region.DensityMultiplier,
	).Scan(&region.ID, &region.CreatedAt, &region.UpdatedAt)
}

func (r *RegionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Region, error) {
	var region models.Region
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, state_code, country_code, population, land_area_sq_mi, density_multiplier, created_at, updated_at
		FROM regions WHERE id = $1
	`, id).Scan(&region.ID, &region.Name, &region.StateCode, &region.CountryCode,
		&region.Population, &region.LandAreaSqMi, &region.DensityMultiplier,
		&region.CreatedAt, &region.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *RegionRepo) Update(ctx context.Context, region *models.Region) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE regions SET name = $1, state_code = $2, country_code = $3,
			population = $4, land_area_sq_mi = $5, density_multiplier = $6, updated_at = now()
		WHERE id = $7
	`, region.Name, region.StateCode, region.CountryCode,
		region.Population, region.LandAreaSqMi, region.DensityMultiplier, region.ID)
	return err
}

func (r *RegionRepo) ListByCountry(ctx context.Context, countryCode string) ([]models.Region, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, state_code, country_code, population, land_area_sq_mi, density_multiplier, created_at, updated_at
		FROM regions WHERE country_code = $1
		ORDER BY name ASC
	`, countryCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []models.Region
	for rows.Next() {
		var region models.Region
		if err := rows.Scan(&region.ID, &region.Name, &region.StateCode, &region.CountryCode,
			&region.Population, &region.LandAreaSqMi, &region.DensityMultiplier,
			&region.CreatedAt, &region.UpdatedAt); err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, rows.Err()
}

func (r *RegionRepo) ListCountries(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT country_code FROM regions ORDER BY country_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
