package breaker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campaign-analytics/internal/config/configs"
	"campaign-analytics/internal/core/domain"
	"campaign-analytics/internal/core/port"
	"campaign-analytics/internal/core/port/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() configs.Breaker {
	return configs.Breaker{
		Enabled:             true,
		ConsecutiveFailures: 2,
		MaxRequests:         1,
		Timeout:             time.Hour,
	}
}

func TestNewDisabledReturnsInner(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	cfg := testConfig()
	cfg.Enabled = false

	assert.Same(t, repo, New(repo, cfg, discardLogger()))
}

func TestBreakerOpensOnUnavailability(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	br := newRepository(repo, testConfig(), discardLogger())
	ctx := context.Background()

	repo.EXPECT().List(mock.Anything, (*domain.Status)(nil)).
		Return(nil, port.ErrStoreUnavailable).
		Times(2)

	for i := 0; i < 2; i++ {
		_, err := br.List(ctx, nil)
		require.ErrorIs(t, err, port.ErrStoreUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, br.State())

	// Open: the inner repository is not called again.
	_, err := br.List(ctx, nil)
	assert.ErrorIs(t, err, port.ErrStoreUnavailable)
	_, err = br.Create(ctx, domain.CampaignDraft{CampaignName: "x", Status: domain.StatusActive})
	assert.ErrorIs(t, err, port.ErrStoreUnavailable)
}

func TestBreakerIgnoresDomainErrors(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	br := newRepository(repo, testConfig(), discardLogger())
	ctx := context.Background()

	repo.EXPECT().Get(mock.Anything, int64(42)).Return(nil, port.ErrNotFound).Times(3)

	for i := 0; i < 3; i++ {
		_, err := br.Get(ctx, 42)
		assert.ErrorIs(t, err, port.ErrNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, br.State())
}

func TestBreakerPassesResultsThrough(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	br := newRepository(repo, testConfig(), discardLogger())
	ctx := context.Background()

	rows := []domain.Campaign{{ID: 1, CampaignName: "A", Status: domain.StatusActive}}
	paused := domain.StatusPaused
	repo.EXPECT().List(mock.Anything, &paused).Return(rows, nil)
	repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("domain.CampaignDraft")).
		Return(&domain.Campaign{ID: 9, CampaignName: "B", Status: domain.StatusPaused}, nil)

	got, err := br.List(ctx, &paused)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	created, err := br.Create(ctx, domain.CampaignDraft{CampaignName: "B", Status: domain.StatusPaused})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
}
