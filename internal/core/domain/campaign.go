package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

// ErrInvalidCampaign is returned when a campaign draft violates the
// campaign invariants (empty name, unknown status, negative counters).
var ErrInvalidCampaign = errors.New("invalid campaign")

// Status is the lifecycle state of a campaign. Only StatusActive and
// StatusPaused are valid; the store enforces the same set with a check
// constraint.
type Status string

const (
	StatusActive Status = "Active"
	StatusPaused Status = "Paused"
)

// Statuses lists every valid Status in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusPaused}
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusPaused
}

// ParseStatus converts raw into a Status. The match is exact: "active" is
// not accepted, mirroring the store's check constraint.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}

// Campaign represents an advertising campaign row.
// Cost is a monetary amount with two fractional digits.
type Campaign struct {
	ID           int64     `json:"id"`
	CampaignName string    `json:"campaign_name"`
	Status       Status    `json:"status"`
	Clicks       int64     `json:"clicks"`
	Cost         float64   `json:"cost"`
	Impressions  int64     `json:"impressions"`
	CreatedAt    time.Time `json:"created_at"`
}

// CampaignDraft is the input for creating a campaign. Counters left out
// of a request decode as zero. Cost must fit the NUMERIC(12,2) column.
type CampaignDraft struct {
	CampaignName string  `json:"campaign_name" validate:"required"`
	Status       Status  `json:"status" validate:"required,campaign_status"`
	Clicks       int64   `json:"clicks" validate:"min=0"`
	Cost         float64 `json:"cost" validate:"min=0,max=9999999999.99"`
	Impressions  int64   `json:"impressions" validate:"min=0"`
}

// Normalize trims the name and rounds cost to cents.
func (d CampaignDraft) Normalize() CampaignDraft {
	d.CampaignName = strings.TrimSpace(d.CampaignName)
	d.Cost = RoundCents(d.Cost)
	return d
}

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
