package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-analytics/internal/core/domain"
	"campaign-analytics/internal/db"
)

// seededCampaigns returns the sample campaigns as the store would list
// them after a fresh seed.
func seededCampaigns() []domain.Campaign {
	drafts := db.SampleCampaigns()
	out := make([]domain.Campaign, len(drafts))
	for i, d := range drafts {
		out[i] = domain.Campaign{
			ID:           int64(i + 1),
			CampaignName: d.CampaignName,
			Status:       d.Status,
			Clicks:       d.Clicks,
			Cost:         d.Cost,
			Impressions:  d.Impressions,
		}
	}
	return out
}

func numbered(n int) []domain.Campaign {
	out := make([]domain.Campaign, n)
	for i := range out {
		status := domain.StatusActive
		if i%3 == 0 {
			status = domain.StatusPaused
		}
		out[i] = domain.Campaign{ID: int64(i + 1), CampaignName: fmt.Sprintf("c%d", i+1), Status: status}
	}
	return out
}

func TestFilterCampaigns(t *testing.T) {
	all := seededCampaigns()

	assert.Equal(t, all, FilterCampaigns(all, FilterAll))

	for _, f := range []StatusFilter{FilterActive, FilterPaused} {
		got := FilterCampaigns(all, f)
		assert.Len(t, got, 5)
		prev := int64(0)
		for _, c := range got {
			assert.Equal(t, f, StatusFilter(c.Status))
			assert.Greater(t, c.ID, prev, "original order is kept")
			prev = c.ID
		}
	}

	assert.Empty(t, FilterCampaigns(nil, FilterActive))
}

func TestAggregate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := Aggregate(nil)
		assert.Equal(t, Totals{}, got)
	})

	t.Run("zero impressions", func(t *testing.T) {
		got := Aggregate([]domain.Campaign{{Status: domain.StatusPaused, Clicks: 5}})
		assert.Equal(t, 0, got.Active)
		assert.Zero(t, got.AverageCTR)
	})

	t.Run("seeded", func(t *testing.T) {
		got := Aggregate(seededCampaigns())
		assert.Equal(t, 10, got.Campaigns)
		assert.Equal(t, 5, got.Active)
		assert.Equal(t, int64(1880), got.Clicks)
		assert.Equal(t, int64(16000), got.Impressions)
		assert.InDelta(t, 565.29, got.Cost, 0.001)
		assert.InDelta(t, 11.75, got.AverageCTR, 0.0001)
	})
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, rows, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{20, 5, 4},
		{21, 20, 2},
		{7, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.rows), "n=%d rows=%d", tt.n, tt.rows)
	}
}

// Every page holds at most rowsPerPage rows and the pages concatenated
// reproduce the list exactly.
func TestPageSliceCoversList(t *testing.T) {
	for _, rows := range RowsPerPageOptions() {
		for n := 0; n <= 45; n++ {
			list := numbered(n)
			pages := TotalPages(n, rows)

			var joined []domain.Campaign
			for p := 1; p <= pages; p++ {
				page := PageSlice(list, p, rows)
				require.LessOrEqual(t, len(page), rows)
				if n > 0 {
					require.NotEmpty(t, page, "n=%d rows=%d page=%d", n, rows, p)
				}
				joined = append(joined, page...)
			}
			require.Len(t, joined, n, "n=%d rows=%d", n, rows)
			for i := range joined {
				require.Equal(t, list[i].ID, joined[i].ID)
			}
			assert.Empty(t, PageSlice(list, pages+1, rows))
		}
	}
}

func TestDeriveSeededActiveFilter(t *testing.T) {
	s := NewState(10).ReceiveList(seededCampaigns(), "store", true).SetFilter(FilterActive)

	v := Derive(s)
	require.True(t, v.ShowData)
	assert.Equal(t, 5, v.Filtered)
	assert.Equal(t, 5, v.Totals.Campaigns)
	assert.Equal(t, 5, v.Totals.Active)
	assert.Equal(t, int64(930), v.Totals.Clicks)
	assert.Equal(t, int64(7500), v.Totals.Impressions)
	assert.InDelta(t, 284.39, v.Totals.Cost, 0.001)
	assert.Equal(t, "12.40%", FormatPercent(v.Totals.AverageCTR))
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 1, v.FirstRow)
	assert.Equal(t, 5, v.LastRow)
	for _, row := range v.Rows {
		assert.Equal(t, domain.StatusActive, row.Status)
	}
}

func TestDerivePagination(t *testing.T) {
	s := NewState(5).ReceiveList(numbered(12), "store", true).SetPage(3)

	v := Derive(s)
	assert.Equal(t, 3, v.Page)
	assert.Equal(t, 3, v.TotalPages)
	assert.Len(t, v.Rows, 2)
	assert.Equal(t, 11, v.FirstRow)
	assert.Equal(t, 12, v.LastRow)
	assert.True(t, v.HasPrev())
	assert.False(t, v.HasNext())
	assert.Equal(t, 2, v.PrevPage())
	assert.Equal(t, 3, v.NextPage())
}

func TestDeriveHidesDataUnlessLoaded(t *testing.T) {
	loaded := NewState(10).ReceiveList(seededCampaigns(), "store", true)

	assert.False(t, Derive(NewState(10)).ShowData)
	assert.False(t, Derive(loaded.BeginFetch()).ShowData)
	assert.False(t, Derive(loaded.FailFetch(MsgLoadFailed)).ShowData)
	assert.True(t, Derive(loaded).ShowData)
}

func TestDeriveEmptyList(t *testing.T) {
	v := Derive(NewState(10).ReceiveList(nil, "store", true))
	assert.True(t, v.ShowData)
	assert.Empty(t, v.Rows)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 1, v.TotalPages)
	assert.Zero(t, v.FirstRow)
	assert.Zero(t, v.LastRow)
	assert.False(t, v.HasPrev())
	assert.False(t, v.HasNext())
}

func TestNewRowFormatting(t *testing.T) {
	row := NewRow(domain.Campaign{ID: 1, CampaignName: "Test", Status: domain.StatusActive})
	assert.Equal(t, "0.00%", row.CTRText)
	assert.Equal(t, "$0.00", row.CPCText)
	assert.Equal(t, "$0.00", row.CostText)

	row = NewRow(domain.Campaign{Clicks: 150, Cost: 45.99, Impressions: 1000})
	assert.Equal(t, "15.00%", row.CTRText)
	assert.Equal(t, "$0.31", row.CPCText)
	assert.Equal(t, "$45.99", row.CostText)
}
