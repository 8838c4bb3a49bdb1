// Package breaker guards the campaign store with a circuit breaker so that
// an unreachable database is detected once and then skipped, instead of
// every request waiting on its own dial timeout.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gobreaker "github.com/sony/gobreaker/v2"

	"campaign-analytics/internal/config/configs"
	"campaign-analytics/internal/core/domain"
	"campaign-analytics/internal/core/port"
	"campaign-analytics/internal/metrics"
)

const name = "campaign-store"

// Repository decorates a port.CampaignRepository with a circuit breaker.
// Only port.ErrStoreUnavailable counts as a failure.
type Repository struct {
	next   port.CampaignRepository
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

// New wraps next. When cfg.Enabled is false next is returned unchanged.
func New(next port.CampaignRepository, cfg configs.Breaker, logger *slog.Logger) port.CampaignRepository {
	if !cfg.Enabled {
		return next
	}
	return newRepository(next, cfg, logger)
}

func newRepository(next port.CampaignRepository, cfg configs.Breaker, logger *slog.Logger) *Repository {
	r := &Repository{next: next, logger: logger}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 1
	}
	r.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, port.ErrStoreUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return r
}

// State reports the current breaker state.
func (r *Repository) State() gobreaker.State {
	return r.cb.State()
}

// List implements port.CampaignRepository.
func (r *Repository) List(ctx context.Context, status *domain.Status) ([]domain.Campaign, error) {
	res, err := r.execute(func() (any, error) {
		return r.next.List(ctx, status)
	})
	if err != nil {
		return nil, err
	}
	campaigns, _ := res.([]domain.Campaign)
	return campaigns, nil
}

// Get implements port.CampaignRepository.
func (r *Repository) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	res, err := r.execute(func() (any, error) {
		return r.next.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	c, _ := res.(*domain.Campaign)
	return c, nil
}

// Create implements port.CampaignRepository.
func (r *Repository) Create(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error) {
	res, err := r.execute(func() (any, error) {
		return r.next.Create(ctx, draft)
	})
	if err != nil {
		return nil, err
	}
	c, _ := res.(*domain.Campaign)
	return c, nil
}

// execute runs fn through the breaker. Rejections while open or
// half-open are reported as port.ErrStoreUnavailable.
func (r *Repository) execute(fn func() (any, error)) (any, error) {
	res, err := r.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", port.ErrStoreUnavailable, err)
	}
	return res, err
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
