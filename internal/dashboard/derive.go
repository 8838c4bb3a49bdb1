package dashboard

import (
	"fmt"

	"campaign-analytics/internal/core/domain"
)

// FilterCampaigns returns the campaigns matching f in their original
// order. FilterAll returns campaigns unchanged.
func FilterCampaigns(campaigns []domain.Campaign, f StatusFilter) []domain.Campaign {
	if f == FilterAll {
		return campaigns
	}
	out := make([]domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if StatusFilter(c.Status) == f {
			out = append(out, c)
		}
	}
	return out
}

// Totals aggregates a set of campaigns.
type Totals struct {
	Campaigns   int     `json:"campaigns"`
	Active      int     `json:"active"`
	Clicks      int64   `json:"clicks"`
	Cost        float64 `json:"cost"`
	Impressions int64   `json:"impressions"`
	// AverageCTR is total clicks over total impressions, as a percentage.
	AverageCTR float64 `json:"average_ctr"`
}

// Aggregate sums campaigns. It is applied to the filtered subset, so the
// header metrics follow the selected filter.
func Aggregate(campaigns []domain.Campaign) Totals {
	var t Totals
	for _, c := range campaigns {
		t.Campaigns++
		if c.Status == domain.StatusActive {
			t.Active++
		}
		t.Clicks += c.Clicks
		t.Cost += c.Cost
		t.Impressions += c.Impressions
	}
	t.Cost = domain.RoundCents(t.Cost)
	t.AverageCTR = domain.ClickThroughRate(t.Clicks, t.Impressions)
	return t
}

// TotalPages returns ceil(n / rowsPerPage), never less than 1.
func TotalPages(n, rowsPerPage int) int {
	if rowsPerPage <= 0 || n <= 0 {
		return 1
	}
	return (n + rowsPerPage - 1) / rowsPerPage
}

// PageSlice returns the rows of the 1-based page: the half-open range
// [(page-1)*rowsPerPage, page*rowsPerPage) clipped to the list.
func PageSlice(campaigns []domain.Campaign, page, rowsPerPage int) []domain.Campaign {
	if rowsPerPage <= 0 {
		return nil
	}
	page = max(page, 1)
	start := min((page-1)*rowsPerPage, len(campaigns))
	end := min(start+rowsPerPage, len(campaigns))
	return campaigns[start:end]
}

// Row is one table row with its derived fields formatted for display.
type Row struct {
	domain.Campaign
	CTRText  string
	CPCText  string
	CostText string
}

// NewRow derives the display fields of c.
func NewRow(c domain.Campaign) Row {
	return Row{
		Campaign: c,
		CTRText:  FormatPercent(c.CTR()),
		CPCText:  FormatCurrency(c.CPC()),
		CostText: FormatCurrency(c.Cost),
	}
}

// View is everything the dashboard page renders, derived from a State.
type View struct {
	State State
	// ShowData is false while loading or after a failed fetch; the page then
	// shows a status message instead of metrics and table.
	ShowData   bool
	Totals     Totals
	Rows       []Row
	Filtered   int
	Page       int
	TotalPages int
	// FirstRow and LastRow are the 1-based positions of the visible rows
	// within the filtered set, both zero when it is empty.
	FirstRow int
	LastRow  int
}

// HasPrev reports whether a previous page exists.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists.
func (v View) HasNext() bool { return v.Page < v.TotalPages }

// PrevPage and NextPage are the neighbouring page numbers, clamped.
func (v View) PrevPage() int { return max(v.Page-1, 1) }
func (v View) NextPage() int { return min(v.Page+1, v.TotalPages) }

// Derive computes the view of s: filter, aggregate, paginate, and format
// each visible row. It performs no I/O and depends only on s.
func Derive(s State) View {
	v := View{State: s, ShowData: s.Phase == PhaseLoaded}

	filtered := FilterCampaigns(s.Campaigns, s.Filter)
	v.Filtered = len(filtered)
	v.Totals = Aggregate(filtered)
	v.TotalPages = TotalPages(len(filtered), s.RowsPerPage)
	v.Page = clampPage(s.CurrentPage, v.TotalPages)

	visible := PageSlice(filtered, v.Page, s.RowsPerPage)
	v.Rows = make([]Row, len(visible))
	for i, c := range visible {
		v.Rows[i] = NewRow(c)
	}
	if len(visible) > 0 {
		v.FirstRow = (v.Page-1)*s.RowsPerPage + 1
		v.LastRow = v.FirstRow + len(visible) - 1
	}
	return v
}

// FormatPercent renders a percentage with two decimals, e.g. "12.50%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatCurrency renders a dollar amount with two decimals, e.g. "$0.00".
func FormatCurrency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
