package migrations_test

import (
	"context"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/migrations"
	"github.com/pkordes/travel-planner/backend/testutil"
)

// TestMigrations_UpDown applies every migration, verifies the resulting
// schema objects, and rolls all migrations back again.
func TestMigrations_UpDown(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err)

	_, err = provider.Up(ctx)
	require.NoError(t, err)

	var exists bool
	err = db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'itineraries')`,
	).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "itineraries table exists after up")

	err = db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT FROM pg_trigger WHERE tgname = 'itineraries_notify_change')`,
	).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "change-notify trigger exists after up")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err)

	err = db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'itineraries')`,
	).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists, "itineraries table gone after down")

	// Leave the schema in place for any tests that follow.
	_, err = provider.Up(ctx)
	require.NoError(t, err)
}
