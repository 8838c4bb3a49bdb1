package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"campaign-analytics/internal/core/domain"
)

// CampaignAPI is the part of the campaign API the dashboard uses.
type CampaignAPI interface {
	// ListCampaigns returns every campaign and the data source the API
	// reported ("store" or "fallback").
	ListCampaigns(ctx context.Context) ([]domain.Campaign, string, error)
	CreateCampaign(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error)
}

// APIError is a non-2xx answer from the campaign API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("campaign api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("campaign api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the campaign API over HTTP.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a client for the API rooted at base. Every request is
// bounded by timeout.
func NewClient(base url.URL, timeout time.Duration) *Client {
	return &Client{base: &base, http: &http.Client{Timeout: timeout}}
}

// ListCampaigns fetches GET /campaigns.
func (c *Client) ListCampaigns(ctx context.Context) ([]domain.Campaign, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("campaigns"), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", readAPIError(resp)
	}
	var campaigns []domain.Campaign
	if err = json.NewDecoder(resp.Body).Decode(&campaigns); err != nil {
		return nil, "", fmt.Errorf("decode campaigns: %w", err)
	}
	return campaigns, resp.Header.Get("X-Data-Source"), nil
}

// CreateCampaign posts draft to POST /campaigns.
func (c *Client) CreateCampaign(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("campaigns"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}
	var created domain.Campaign
	if err = json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created campaign: %w", err)
	}
	return &created, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.JoinPath(path).String()
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
