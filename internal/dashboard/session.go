package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"campaign-analytics/internal/core/domain"
)

// Messages shown to the user for failed requests.
const (
	MsgLoadFailed   = "Unable to load campaigns. Please try again."
	MsgCreateFailed = "Failed to create campaign"
)

// Session owns one dashboard State and performs the network calls that
// feed it. The mutex guards the state only; it is never held across a
// request to the API.
type Session struct {
	api    CampaignAPI
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	issued  uint64
	applied uint64
}

// NewSession returns a session in the loading phase.
func NewSession(api CampaignAPI, rowsPerPage int, logger *slog.Logger) *Session {
	return &Session{api: api, logger: logger, state: NewState(rowsPerPage)}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies a pure transition and returns the resulting state.
func (s *Session) Update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// Load performs the initial fetch, which also resets the filter to All.
func (s *Session) Load(ctx context.Context) error {
	return s.fetch(ctx, true)
}

// Refresh refetches the list keeping the current filter.
func (s *Session) Refresh(ctx context.Context) error {
	return s.fetch(ctx, false)
}

// fetch requests the list and applies the response unless a newer fetch
// has already been applied, in which case the response is dropped.
func (s *Session) fetch(ctx context.Context, initial bool) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.state = s.state.BeginFetch()
	s.mu.Unlock()

	campaigns, source, err := s.api.ListCampaigns(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		s.logger.Debug("discarding stale campaign list", slog.Uint64("seq", seq), slog.Uint64("applied", s.applied))
		return nil
	}
	s.applied = seq

	if err != nil {
		s.logger.Error("load campaigns failed", slog.Any("error", err))
		s.state = s.state.FailFetch(MsgLoadFailed)
		return err
	}
	s.state = s.state.ReceiveList(campaigns, source, initial)
	return nil
}

// SubmitCampaign creates a campaign with zeroed counters from the modal
// input. On success the list is refetched and the modal closed; on
// failure the modal stays open with an alert and the local list is left
// as it was.
func (s *Session) SubmitCampaign(ctx context.Context, name string, status domain.Status) error {
	s.Update(func(st State) State { return st.EditModal(name, status) })

	draft := domain.CampaignDraft{CampaignName: name, Status: status}
	if _, err := s.api.CreateCampaign(ctx, draft); err != nil {
		s.logger.Warn("create campaign failed", slog.Any("error", err))
		s.Update(func(st State) State { return st.FailSubmit(createFailureMessage(err)) })
		return err
	}

	// A failed refetch is already recorded in the state.
	_ = s.Refresh(ctx)
	s.Update(State.CloseModal)
	return nil
}

func createFailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return MsgCreateFailed + ": " + apiErr.Message
	}
	return MsgCreateFailed + ". Please try again."
}
