package repositories

import (
	"context"
	"time"

	"github.com/geoads/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// RecordDay upserts one day of delivery counters for a campaign.
func (r *StatsRepo) RecordDay(ctx context.Context, s models.DailyStat) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO campaign_stats (campaign_id, day, impressions, clicks, spend)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (campaign_id, day) DO UPDATE SET
			impressions = campaign_stats.impressions + EXCLUDED.impressions,
			clicks = campaign_stats.clicks + EXCLUDED.clicks,
			spend = campaign_stats.spend + EXCLUDED.spend
	`, s.CampaignID, s.Day, s.Impressions, s.Clicks, s.Spend)
	return err
}

func (r *StatsRepo) ListForCampaign(ctx context.Context, campaignID uuid.UUID, since time.Time) ([]models.DailyStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT campaign_id, day, impressions, clicks, spend
		FROM campaign_stats
		WHERE campaign_id = $1 AND day >= $2
		ORDER BY day ASC
	`, campaignID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var s models.DailyStat
		if err := rows.Scan(&s.CampaignID, &s.Day, &s.Impressions, &s.Clicks, &s.Spend); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Totals sums a campaign's counters over its whole life.
func (r *StatsRepo) Totals(ctx context.Context, campaignID uuid.UUID) (impressions, clicks int64, spend float64, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(impressions), 0), COALESCE(SUM(clicks), 0), COALESCE(SUM(spend), 0)
		FROM campaign_stats WHERE campaign_id = $1
	`, campaignID).Scan(&impressions, &clicks, &spend)
	return
}
