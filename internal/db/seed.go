package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-analytics/internal/core/domain"
)

// SampleCampaigns returns the demo campaigns inserted by Seed: five
// Active and five Paused.
func SampleCampaigns() []domain.CampaignDraft {
	return []domain.CampaignDraft{
		{CampaignName: "Summer Sale", Status: domain.StatusActive, Clicks: 150, Cost: 45.99, Impressions: 1000},
		{CampaignName: "Black Friday", Status: domain.StatusPaused, Clicks: 320, Cost: 89.50, Impressions: 2500},
		{CampaignName: "Holiday Special", Status: domain.StatusActive, Clicks: 210, Cost: 67.25, Impressions: 1800},
		{CampaignName: "Spring Launch", Status: domain.StatusPaused, Clicks: 95, Cost: 30.00, Impressions: 1200},
		{CampaignName: "Back to School", Status: domain.StatusActive, Clicks: 180, Cost: 54.40, Impressions: 1500},
		{CampaignName: "Cyber Monday", Status: domain.StatusPaused, Clicks: 400, Cost: 120.00, Impressions: 3200},
		{CampaignName: "New Year Promo", Status: domain.StatusActive, Clicks: 130, Cost: 38.75, Impressions: 1100},
		{CampaignName: "Valentine Deals", Status: domain.StatusPaused, Clicks: 75, Cost: 22.50, Impressions: 900},
		{CampaignName: "Flash Sale", Status: domain.StatusActive, Clicks: 260, Cost: 78.00, Impressions: 2100},
		{CampaignName: "Clearance Event", Status: domain.StatusPaused, Clicks: 60, Cost: 18.90, Impressions: 700},
	}
}

// Seed inserts the sample campaigns when the campaigns table is empty. It
// is a no-op on a populated table, so it is safe to run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var existing int64
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM campaigns`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("count campaigns: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	samples := SampleCampaigns()
	batch := &pgx.Batch{}
	for _, c := range samples {
		batch.Queue(`INSERT INTO campaigns (campaign_name, status, clicks, cost, impressions)
VALUES ($1, $2, $3, $4, $5)`, c.CampaignName, string(c.Status), c.Clicks, c.Cost, c.Impressions)
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert sample campaigns: %w", err)
	}
	return len(samples), nil
}
