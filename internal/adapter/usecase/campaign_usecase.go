package usecase

import (
	"context"
	"errors"
	"log/slog"

	"campaign-analytics/internal/core/domain"
	"campaign-analytics/internal/core/port"
	"campaign-analytics/internal/metrics"
	"campaign-analytics/internal/validation"
)

// CampaignUseCase implements port.CampaignUseCase. Reads resolve in two
// tiers, the repository first and the fallback snapshot second; writes
// only ever go to the repository.
type CampaignUseCase struct {
	repo     port.CampaignRepository
	fallback port.FallbackSource
	logger   *slog.Logger
}

// NewCampaignUseCase creates a new usecase over repo with fallback as the
// read-only substitute during store outages.
func NewCampaignUseCase(repo port.CampaignRepository, fallback port.FallbackSource, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, fallback: fallback, logger: logger}
}

// ListCampaigns returns campaigns from the store, or from the fallback
// snapshot when the store read fails for any reason. It never returns a
// store error.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, status *domain.Status) ([]domain.Campaign, port.Source, error) {
	campaigns, err := u.repo.List(ctx, status)
	if err == nil {
		return campaigns, port.SourceStore, nil
	}

	metrics.StoreErrors.WithLabelValues("list").Inc()
	metrics.FallbackReads.WithLabelValues("list").Inc()
	u.logger.WarnContext(ctx, "campaign store read failed, serving fallback snapshot", slog.Any("error", err))
	return u.fallback.List(status), port.SourceFallback, nil
}

// GetCampaign returns a campaign by id. Only unavailability falls back to
// the snapshot; other store errors are returned.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := u.repo.Get(ctx, id)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, port.ErrNotFound):
		return nil, err
	case errors.Is(err, port.ErrStoreUnavailable):
		metrics.StoreErrors.WithLabelValues("get").Inc()
		metrics.FallbackReads.WithLabelValues("get").Inc()
		u.logger.WarnContext(ctx, "campaign store read failed, searching fallback snapshot",
			slog.Int64("id", id), slog.Any("error", err))
		if fc, ok := u.fallback.Get(id); ok {
			return &fc, nil
		}
		return nil, port.ErrNotFound
	default:
		metrics.StoreErrors.WithLabelValues("get").Inc()
		return nil, err
	}
}

// CreateCampaign normalises and validates draft before inserting it.
// Validation failures wrap domain.ErrInvalidCampaign; a store outage is
// returned as port.ErrStoreUnavailable and the fallback is left untouched.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error) {
	draft = draft.Normalize()
	if err := validation.Struct(draft); err != nil {
		return nil, err
	}

	c, err := u.repo.Create(ctx, draft)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCampaign) {
			metrics.StoreErrors.WithLabelValues("create").Inc()
		}
		return nil, err
	}

	metrics.CampaignsCreated.Inc()
	u.logger.InfoContext(ctx, "campaign created",
		slog.Int64("id", c.ID),
		slog.String("status", string(c.Status)))
	return c, nil
}

// FallbackCampaigns returns the whole fallback snapshot.
func (u *CampaignUseCase) FallbackCampaigns() []domain.Campaign {
	return u.fallback.List(nil)
}
