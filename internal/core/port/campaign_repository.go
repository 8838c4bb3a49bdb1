package port

import (
	"context"
	"errors"

	"campaign-analytics/internal/core/domain"
)

var (
	// ErrStoreUnavailable marks failures where the campaign store could not
	// be reached at all, as opposed to a query the store rejected.
	ErrStoreUnavailable = errors.New("campaign store unavailable")
	// ErrNotFound is returned when no campaign has the requested id.
	ErrNotFound = errors.New("campaign not found")
)

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Implementations must be safe
// for concurrent use.
type CampaignRepository interface {
	// List returns campaigns in insertion order. A non-nil status restricts
	// the result to campaigns in that status.
	List(ctx context.Context, status *domain.Status) ([]domain.Campaign, error)
	// Get returns a campaign by id or ErrNotFound.
	Get(ctx context.Context, id int64) (*domain.Campaign, error)
	// Create inserts a campaign and returns it with the store-assigned id
	// and creation time.
	Create(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error)
}

// FallbackSource is a read-only campaign snapshot consulted when the
// repository is unreachable.
type FallbackSource interface {
	List(status *domain.Status) []domain.Campaign
	Get(id int64) (domain.Campaign, bool)
}
