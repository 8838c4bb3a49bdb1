package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-analytics/internal/core/domain"
	"campaign-analytics/internal/core/port"
)

// SQLSTATE codes the repository treats as a rejected payload.
const (
	checkViolation         = "23514"
	numericValueOutOfRange = "22003"
)

const campaignColumns = `id, campaign_name, status, clicks, cost, impressions, created_at`

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL.
type CampaignRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewCampaignRepository returns a new repository instance. Each call is
// bounded by timeout; a zero timeout leaves deadlines to the caller.
func NewCampaignRepository(pool *pgxpool.Pool, timeout time.Duration) *CampaignRepository {
	return &CampaignRepository{pool: pool, timeout: timeout}
}

// List returns campaigns ordered by id, optionally restricted to status.
func (r *CampaignRepository) List(ctx context.Context, status *domain.Status) ([]domain.Campaign, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY id`
	var args []any
	if status != nil {
		query = `SELECT ` + campaignColumns + ` FROM campaigns WHERE status = $1 ORDER BY id`
		args = append(args, string(*status))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	campaigns, err := pgx.CollectRows(rows, scanCampaign)
	if err != nil {
		return nil, classify(err)
	}
	return campaigns, nil
}

// Get returns a campaign by id.
func (r *CampaignRepository) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return nil, classify(err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCampaign)
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

// Create inserts a campaign. The id and created_at are assigned by the
// database.
func (r *CampaignRepository) Create(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	c := domain.Campaign{
		CampaignName: draft.CampaignName,
		Status:       draft.Status,
		Clicks:       draft.Clicks,
		Cost:         draft.Cost,
		Impressions:  draft.Impressions,
	}
	err := r.pool.QueryRow(ctx, `INSERT INTO campaigns (campaign_name, status, clicks, cost, impressions)
VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		c.CampaignName, string(c.Status), c.Clicks, c.Cost, c.Impressions).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *CampaignRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var (
		c      domain.Campaign
		status string
	)
	err := row.Scan(&c.ID, &c.CampaignName, &status, &c.Clicks, &c.Cost, &c.Impressions, &c.CreatedAt)
	c.Status = domain.Status(status)
	return c, err
}

// classify maps driver errors onto the port sentinels. Errors raised while
// connecting, and server errors saying the server cannot take work right
// now, mean the store is unavailable. Constraint and range failures are
// invalid campaigns. Any other server answer keeps its identity.
func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return port.ErrNotFound
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", port.ErrStoreUnavailable, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == checkViolation:
			return fmt.Errorf("%w: violates %s", domain.ErrInvalidCampaign, pgErr.ConstraintName)
		case pgErr.Code == numericValueOutOfRange:
			return fmt.Errorf("%w: %s", domain.ErrInvalidCampaign, pgErr.Message)
		case serverUnavailable(pgErr.Code):
			return fmt.Errorf("%w: %w", port.ErrStoreUnavailable, err)
		}
		return err
	}
	return fmt.Errorf("%w: %w", port.ErrStoreUnavailable, err)
}

// serverUnavailable reports SQLSTATEs of class 08 (connection exception),
// 28 (invalid authorization), 53 (insufficient resources), 57P0x
// (shutdown, startup, crash recovery) and 3D000 (database does not exist).
func serverUnavailable(code string) bool {
	for _, prefix := range []string{"08", "28", "53", "57P0", "3D000"} {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}
