package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/geoads/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

const campaignColumns = `
	id, advertiser_user_id, name, country_code, industry_id, ad_format_id,
	coverage_type, region_id, center_lat, center_lng, radius_miles,
	duration_months, monthly_price, total_budget, currency,
	headline, description, image_url, call_to_action, landing_url,
	status, review_message, starts_at, ends_at, created_at, updated_at`

func scanCampaign(row interface{ Scan(...any) error }) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.AdvertiserUserID, &c.Name, &c.CountryCode, &c.IndustryID, &c.AdFormatID,
		&c.CoverageType, &c.RegionID, &c.CenterLat, &c.CenterLng, &c.RadiusMiles,
		&c.DurationMonths, &c.MonthlyPrice, &c.TotalBudget, &c.Currency,
		&c.Headline, &c.Description, &c.ImageURL, &c.CallToAction, &c.LandingURL,
		&c.Status, &c.ReviewMessage, &c.StartsAt, &c.EndsAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (advertiser_user_id, name, country_code, industry_id, ad_format_id,
			coverage_type, region_id, center_lat, center_lng, radius_miles,
			duration_months, monthly_price, total_budget, currency,
			headline, description, image_url, call_to_action, landing_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at
	`, c.AdvertiserUserID, c.Name, c.CountryCode, c.IndustryID, c.AdFormatID,
		c.CoverageType, c.RegionID, c.CenterLat, c.CenterLng, c.RadiusMiles,
		c.DurationMonths, c.MonthlyPrice, c.TotalBudget, c.Currency,
		c.Headline, c.Description, c.ImageURL, c.CallToAction, c.LandingURL, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	return scanCampaign(row)
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET name = $1, country_code = $2, industry_id = $3, ad_format_id = $4,
			coverage_type = $5, region_id = $6, center_lat = $7, center_lng = $8, radius_miles = $9,
			duration_months = $10, monthly_price = $11, total_budget = $12, currency = $13,
			headline = $14, description = $15, image_url = $16, call_to_action = $17, landing_url = $18,
			updated_at = now()
		WHERE id = $19
	`, c.Name, c.CountryCode, c.IndustryID, c.AdFormatID,
		c.CoverageType, c.RegionID, c.CenterLat, c.CenterLng, c.RadiusMiles,
		c.DurationMonths, c.MonthlyPrice, c.TotalBudget, c.Currency,
		c.Headline, c.Description, c.ImageURL, c.CallToAction, c.LandingURL, c.ID)
	return err
}

// UpdateStatus performs a guarded status flip: the WHERE clause re-checks the
// current status so concurrent transitions cannot both win.
func (r *CampaignRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, message *string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = $1, review_message = $2, updated_at = now()
		WHERE id = $3 AND status = $4
	`, to, message, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s is no longer in status %s", id, from)
	}
	return nil
}

// MarkActive sets the delivery window when a campaign is activated.
func (r *CampaignRepo) MarkActive(ctx context.Context, id uuid.UUID, startsAt, endsAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET starts_at = $1, ends_at = $2, updated_at = now() WHERE id = $3
	`, startsAt, endsAt, id)
	return err
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

type CampaignFilter struct {
	AdvertiserUserID *uuid.UUID
	Status           *string
	Limit            int
	Offset           int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.AdvertiserUserID != nil {
		where = append(where, fmt.Sprintf("advertiser_user_id = $%d", argIdx))
		args = append(args, *f.AdvertiserUserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// ListStale returns campaigns that have sat in a status longer than maxAge.
// Used by the worker for review intake and completion sweeps.
func (r *CampaignRepo) ListStale(ctx context.Context, status string, maxAge time.Duration) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+` FROM campaigns
		WHERE status = $1 AND updated_at < now() - $2::interval
		ORDER BY updated_at ASC
		LIMIT 100
	`, status, maxAge.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// ListEnded returns active campaigns whose delivery window has closed.
func (r *CampaignRepo) ListEnded(ctx context.Context) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+` FROM campaigns
		WHERE status = $1 AND ends_at IS NOT NULL AND ends_at < now()
		LIMIT 100
	`, models.CampaignStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepo) AddStatusHistory(ctx context.Context, h *models.StatusHistory) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaign_status_history (campaign_id, from_status, to_status, actor_id, actor_type, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, h.CampaignID, h.FromStatus, h.ToStatus, h.ActorID, h.ActorType, h.Message,
	).Scan(&h.ID, &h.CreatedAt)
}

func (r *CampaignRepo) GetStatusHistory(ctx context.Context, campaignID uuid.UUID) ([]models.StatusHistory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, from_status, to_status, actor_id, actor_type, message, created_at
		FROM campaign_status_history
		WHERE campaign_id = $1
		ORDER BY created_at ASC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.StatusHistory
	for rows.Next() {
		var h models.StatusHistory
		if err := rows.Scan(&h.ID, &h.CampaignID, &h.FromStatus, &h.ToStatus, &h.ActorID, &h.ActorType, &h.Message, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
