// Package fallback holds the read-only campaign snapshot served while the
// campaign store is unreachable.
package fallback

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/goccy/go-json"

	"campaign-analytics/internal/core/domain"
)

// Snapshot is an immutable set of campaigns. It implements
// port.FallbackSource and is safe for concurrent use.
type Snapshot struct {
	campaigns []domain.Campaign
}

// New returns a snapshot over a copy of campaigns.
func New(campaigns []domain.Campaign) *Snapshot {
	return &Snapshot{campaigns: slices.Clone(campaigns)}
}

// defaultsCreatedAt stamps the built-in sample campaigns.
var defaultsCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Defaults returns the built-in sample campaigns used when no snapshot
// file can be read.
func Defaults() []domain.Campaign {
	return []domain.Campaign{
		{ID: 1, CampaignName: "Sample Campaign A", Status: domain.StatusActive, Clicks: 100, Cost: 50.0, Impressions: 1000, CreatedAt: defaultsCreatedAt},
		{ID: 2, CampaignName: "Sample Campaign B", Status: domain.StatusPaused, Clicks: 50, Cost: 25.0, Impressions: 500, CreatedAt: defaultsCreatedAt},
		{ID: 3, CampaignName: "Sample Campaign C", Status: domain.StatusActive, Clicks: 200, Cost: 120.0, Impressions: 3000, CreatedAt: defaultsCreatedAt},
	}
}

// ReadFile decodes a JSON array of campaigns from path. Rows without a
// created_at are stamped with the file's modification time.
func ReadFile(path string) ([]domain.Campaign, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var campaigns []domain.Campaign
	if err = json.Unmarshal(raw, &campaigns); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i, c := range campaigns {
		if !c.Status.Valid() {
			return nil, fmt.Errorf("decode %s: campaign %d has invalid status %q", path, i, c.Status)
		}
		if c.CreatedAt.IsZero() {
			campaigns[i].CreatedAt = info.ModTime().UTC().Truncate(time.Second)
		}
	}
	return campaigns, nil
}

// Load builds a snapshot from the file at path. A missing or unreadable
// file yields the Defaults; the returned error says why and is meant for
// logging only.
func Load(path string) (*Snapshot, error) {
	campaigns, err := ReadFile(path)
	if err != nil {
		return New(Defaults()), err
	}
	return New(campaigns), nil
}

// List returns the snapshot rows in file order, optionally restricted to
// one status. The result is a copy.
func (s *Snapshot) List(status *domain.Status) []domain.Campaign {
	out := make([]domain.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Get looks up a campaign by id.
func (s *Snapshot) Get(id int64) (domain.Campaign, bool) {
	for _, c := range s.campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Campaign{}, false
}
