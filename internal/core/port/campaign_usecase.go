package port

import (
	"context"

	"campaign-analytics/internal/core/domain"
)

// Source names where a campaign listing was read from.
type Source string

const (
	SourceStore    Source = "store"
	SourceFallback Source = "fallback"
)

// CampaignUseCase defines the business operations exposed by the campaign
// service. This interface represents the primary port into the
// application domain.
type CampaignUseCase interface {
	// ListCampaigns returns all campaigns, optionally restricted to one
	// status. When the store cannot be read the fallback snapshot is
	// returned instead and the Source reports it; store failures are never
	// returned as errors.
	ListCampaigns(ctx context.Context, status *domain.Status) ([]domain.Campaign, Source, error)

	// GetCampaign returns one campaign. During a store outage the
	// fallback snapshot is searched. Unknown ids yield ErrNotFound.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)

	// CreateCampaign validates and persists a new campaign. Invalid drafts
	// produce an error wrapping domain.ErrInvalidCampaign; a store outage
	// produces ErrStoreUnavailable and nothing is written anywhere.
	CreateCampaign(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error)

	// FallbackCampaigns returns the full fallback snapshot.
	FallbackCampaigns() []domain.Campaign
}
