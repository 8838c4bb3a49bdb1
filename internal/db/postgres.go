package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-analytics/internal/config/configs"
)

// NewPostgresPool creates a new pgxpool.Pool with the provided configuration.
// Connections are established lazily, so the pool is usable even when the
// database is down at startup; callers that need an early signal use Ping.
// The caller must close the returned pool when it is no longer needed.
func NewPostgresPool(ctx context.Context, cfg configs.Postgres) (*pgxpool.Pool, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.Addr.String())
	if err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout > 0 {
		poolConf.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	return pgxpool.NewWithConfig(ctx, poolConf)
}

// Ping verifies that a connection can be established within 5 seconds.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return pool.Ping(ctxPing)
}
