// Package dashboard implements the campaign dashboard view: a serializable
// session state, pure transitions over it, pure derivation of everything
// the page shows, and the client and session that feed it from the API.
package dashboard

import (
	"slices"

	"campaign-analytics/internal/core/domain"
)

// Phase is the fetch lifecycle of the campaign list.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseLoaded  Phase = "loaded"
)

// StatusFilter selects which campaigns are shown. FilterAll shows every
// campaign; the other values match domain.Status.
type StatusFilter string

const (
	FilterAll    StatusFilter = "All"
	FilterActive              = StatusFilter(domain.StatusActive)
	FilterPaused              = StatusFilter(domain.StatusPaused)
)

// Filters lists the selectable filters in display order.
func Filters() []StatusFilter {
	return []StatusFilter{FilterAll, FilterActive, FilterPaused}
}

// ParseFilter accepts "All", "Active" or "Paused".
func ParseFilter(raw string) (StatusFilter, bool) {
	f := StatusFilter(raw)
	return f, slices.Contains(Filters(), f)
}

// DefaultRowsPerPage is used when no valid page size is configured.
const DefaultRowsPerPage = 10

// RowsPerPageOptions lists the allowed page sizes.
func RowsPerPageOptions() []int {
	return []int{5, 10, 20}
}

// ValidRowsPerPage reports whether n is an allowed page size.
func ValidRowsPerPage(n int) bool {
	return slices.Contains(RowsPerPageOptions(), n)
}

// Modal is the transient create-campaign form. Its fields only matter
// while Open is true.
type Modal struct {
	Open   bool          `json:"open"`
	Name   string        `json:"name"`
	Status domain.Status `json:"status"`
	Error  string        `json:"error,omitempty"`
}

func closedModal() Modal {
	return Modal{Status: domain.StatusActive}
}

// State is everything one dashboard session holds. It is a plain value:
// transitions return a modified copy and never touch the receiver.
type State struct {
	Phase       Phase             `json:"phase"`
	Error       string            `json:"error,omitempty"`
	Campaigns   []domain.Campaign `json:"campaigns"`
	Source      string            `json:"source,omitempty"`
	Filter      StatusFilter      `json:"filter"`
	CurrentPage int               `json:"current_page"`
	RowsPerPage int               `json:"rows_per_page"`
	Modal       Modal             `json:"modal"`
}

// NewState returns the state of a fresh session, before the first fetch
// completes. An invalid rowsPerPage falls back to DefaultRowsPerPage.
func NewState(rowsPerPage int) State {
	if !ValidRowsPerPage(rowsPerPage) {
		rowsPerPage = DefaultRowsPerPage
	}
	return State{
		Phase:       PhaseLoading,
		Filter:      FilterAll,
		CurrentPage: 1,
		RowsPerPage: rowsPerPage,
		Modal:       closedModal(),
	}
}

// BeginFetch marks a list request as in flight.
func (s State) BeginFetch() State {
	s.Phase = PhaseLoading
	return s
}

// ReceiveList stores a freshly fetched list. The filter is reset to All
// only on the initial load; a manual refresh keeps it. The current page is
// clamped to the new page count.
func (s State) ReceiveList(campaigns []domain.Campaign, source string, initial bool) State {
	s.Phase = PhaseLoaded
	s.Error = ""
	s.Campaigns = slices.Clone(campaigns)
	s.Source = source
	if initial {
		s.Filter = FilterAll
		s.CurrentPage = 1
	}
	s.CurrentPage = clampPage(s.CurrentPage, s.totalPages())
	return s
}

// FailFetch records a failed list request. The previous list is kept but
// not shown while the phase is PhaseError.
func (s State) FailFetch(msg string) State {
	s.Phase = PhaseError
	s.Error = msg
	return s
}

// SetFilter selects a status filter and returns to the first page.
// Unknown filters leave the state unchanged.
func (s State) SetFilter(f StatusFilter) State {
	if _, ok := ParseFilter(string(f)); !ok {
		return s
	}
	s.Filter = f
	s.CurrentPage = 1
	return s
}

// SetPage moves to page, clamped to [1, total pages].
func (s State) SetPage(page int) State {
	s.CurrentPage = clampPage(page, s.totalPages())
	return s
}

// SetRowsPerPage changes the page size and returns to the first page.
// Sizes other than 5, 10 and 20 leave the state unchanged.
func (s State) SetRowsPerPage(n int) State {
	if !ValidRowsPerPage(n) {
		return s
	}
	s.RowsPerPage = n
	s.CurrentPage = 1
	return s
}

// OpenModal opens an empty create form with status Active.
func (s State) OpenModal() State {
	s.Modal = closedModal()
	s.Modal.Open = true
	return s
}

// CloseModal closes the create form and discards its contents.
func (s State) CloseModal() State {
	s.Modal = closedModal()
	return s
}

// EditModal stores the form input. It has no effect on a closed modal.
func (s State) EditModal(name string, status domain.Status) State {
	if !s.Modal.Open {
		return s
	}
	s.Modal.Name = name
	s.Modal.Status = status
	return s
}

// FailSubmit keeps the modal open with msg shown as an alert so the user
// can resubmit.
func (s State) FailSubmit(msg string) State {
	s.Modal.Open = true
	s.Modal.Error = msg
	return s
}

func (s State) totalPages() int {
	return TotalPages(len(FilterCampaigns(s.Campaigns, s.Filter)), s.RowsPerPage)
}

func clampPage(page, total int) int {
	return max(1, min(page, total))
}
