package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campaign-analytics/internal/adapter/fallback"
	"campaign-analytics/internal/adapter/usecase"
	"campaign-analytics/internal/config/configs"
	"campaign-analytics/internal/core/domain"
	"campaign-analytics/internal/core/port"
	"campaign-analytics/internal/core/port/mocks"
)

func newTestHandler(t *testing.T) (http.Handler, *mocks.MockCampaignRepository) {
	t.Helper()
	repo := mocks.NewMockCampaignRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := usecase.NewCampaignUseCase(repo, fallback.New(fallback.Defaults()), logger)
	cfg := configs.HTTP{CORSAllowedOrigins: []string{"*"}, RateLimitDisabled: true}
	return NewHandler(svc, cfg, logger).Router(), repo
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestListCampaigns(t *testing.T) {
	h, repo := newTestHandler(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.EXPECT().List(mock.Anything, (*domain.Status)(nil)).Return([]domain.Campaign{
		{ID: 1, CampaignName: "Summer Sale", Status: domain.StatusActive, Clicks: 150, Cost: 45.99, Impressions: 1000, CreatedAt: created},
	}, nil)

	rec := do(t, h, http.MethodGet, "/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "store", rec.Header().Get(dataSourceHeader))

	rows := decode[[]map[string]any](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Summer Sale", rows[0]["campaign_name"])
	assert.Equal(t, "Active", rows[0]["status"])
	assert.EqualValues(t, 45.99, rows[0]["cost"])
	assert.Equal(t, "2024-01-02T03:04:05Z", rows[0]["created_at"])
}

func TestListCampaignsStatusQuery(t *testing.T) {
	h, repo := newTestHandler(t)
	paused := domain.StatusPaused
	repo.EXPECT().List(mock.Anything, &paused).Return([]domain.Campaign{}, nil).Once()
	repo.EXPECT().List(mock.Anything, (*domain.Status)(nil)).Return([]domain.Campaign{}, nil).Once()

	rec := do(t, h, http.MethodGet, "/campaigns?status=Paused", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/campaigns?status=Draft", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListCampaignsServesFallbackWhenStoreUnreachable(t *testing.T) {
	h, repo := newTestHandler(t)
	repo.EXPECT().List(mock.Anything, mock.Anything).Return(nil, port.ErrStoreUnavailable)

	rec := do(t, h, http.MethodGet, "/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fallback", rec.Header().Get(dataSourceHeader))

	rows := decode[[]domain.Campaign](t, rec)
	assert.Len(t, rows, len(fallback.Defaults()))
	assert.Equal(t, "Sample Campaign A", rows[0].CampaignName)
	for _, c := range rows {
		assert.False(t, c.CreatedAt.IsZero(), "fallback rows carry a creation time")
	}
}

func TestGetCampaign(t *testing.T) {
	h, repo := newTestHandler(t)
	repo.EXPECT().Get(mock.Anything, int64(4)).Return(&domain.Campaign{ID: 4, CampaignName: "Spring Launch", Status: domain.StatusPaused}, nil)
	repo.EXPECT().Get(mock.Anything, int64(404)).Return(nil, port.ErrNotFound)

	rec := do(t, h, http.MethodGet, "/campaigns/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Spring Launch", decode[domain.Campaign](t, rec).CampaignName)

	rec = do(t, h, http.MethodGet, "/campaigns/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decode[ErrorResponse](t, rec).Error.Code)

	rec = do(t, h, http.MethodGet, "/campaigns/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCampaign(t *testing.T) {
	h, repo := newTestHandler(t)
	repo.EXPECT().
		Create(mock.Anything, domain.CampaignDraft{CampaignName: "Test", Status: domain.StatusActive}).
		RunAndReturn(func(_ context.Context, d domain.CampaignDraft) (*domain.Campaign, error) {
			return &domain.Campaign{ID: 11, CampaignName: d.CampaignName, Status: d.Status, CreatedAt: time.Now()}, nil
		})

	rec := do(t, h, http.MethodPost, "/campaigns", `{"campaign_name":"Test","status":"Active"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/campaigns/11", rec.Header().Get("Location"))

	c := decode[domain.Campaign](t, rec)
	assert.Equal(t, int64(11), c.ID)
	assert.Zero(t, c.Clicks)
	assert.Zero(t, c.Cost)
	assert.Zero(t, c.Impressions)
}

func TestCreateCampaignRejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		code   string
		detail string
	}{
		{"invalid status", `{"campaign_name":"Test","status":"Draft"}`, ErrCodeValidationFailed, "status"},
		{"missing name", `{"status":"Active"}`, ErrCodeValidationFailed, "campaign_name"},
		{"blank name", `{"campaign_name":"  ","status":"Paused"}`, ErrCodeValidationFailed, "campaign_name"},
		{"cost too large", `{"campaign_name":"Test","status":"Active","cost":10000000000}`, ErrCodeValidationFailed, "cost"},
		{"malformed json", `{"campaign_name":`, ErrCodeBadRequest, ""},
		{"wrong type", `{"campaign_name":"x","status":"Active","clicks":"many"}`, ErrCodeBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			rec := do(t, h, http.MethodPost, "/campaigns", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.code, resp.Error.Code)
			if tt.detail != "" {
				assert.Contains(t, resp.Error.Details, tt.detail)
			}
		})
	}
}

func TestCreateCampaignStoreUnavailable(t *testing.T) {
	h, repo := newTestHandler(t)
	repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil, port.ErrStoreUnavailable)

	rec := do(t, h, http.MethodPost, "/campaigns", `{"campaign_name":"Test","status":"Active"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrCodeServiceUnavailable, decode[ErrorResponse](t, rec).Error.Code)
}

func TestFallbackEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/fallback", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Campaign](t, rec), 3)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/campaigns", nil)
	req.Header.Set("Origin", "http://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	_ = do(t, h, http.MethodGet, "/", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "campaign_api_requests_total")
}

func TestRequestIDPropagated(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}
