package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weekendsync/availability-api/internal/adapters/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS availability (
	user_id            text NOT NULL,
	date               date NOT NULL,
	time_slot          text NOT NULL,
	status             text NOT NULL,
	event_type         text NOT NULL,
	travel_destination text,
	restaurant_name    text,
	restaurant_location text,
	event_name         text,
	event_location     text,
	wedding_location   text,
	event_url          text,
	partners           text[],
	notes              text,
	private_notes      text,
	privacy_level      text NOT NULL DEFAULT 'public',
	updated_at         timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, date, time_slot)
);
`

// OpenMigratedPool connects to the database named by TEST_DATABASE_URL,
// applies the schema and returns a pool that closes with the test.
// Tests calling it are skipped when the variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract tests")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return pool
}
