// Package testutil starts a disposable PostgreSQL for integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"campaign-analytics/internal/db"
)

// TestDatabase represents a migrated test database instance.
type TestDatabase struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	URL       string
}

// SetupTestDatabase creates a PostgreSQL container, applies migrations and
// opens a pool. Tests calling it are skipped under -short. Cleanup is
// registered with t.Cleanup.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("campaigns_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"test":      "campaign-analytics",
			"test-name": t.Name(),
		}),
	)
	require.NoError(t, err)

	tdb := &TestDatabase{Container: container}
	t.Cleanup(func() { tdb.cleanup(t) })

	tdb.URL, err = container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, db.Migrate(tdb.URL))

	tdb.Pool, err = pgxpool.New(ctx, tdb.URL)
	require.NoError(t, err)
	require.NoError(t, db.Ping(ctx, tdb.Pool))

	return tdb
}

func (td *TestDatabase) cleanup(t *testing.T) {
	if td.Pool != nil {
		td.Pool.Close()
	}
	if td.Container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := td.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate test container: %v", err)
	}
}
