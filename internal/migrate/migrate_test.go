package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beheryahmed1991/subscription-tracker/internal/db"
)

func TestUpDown_SQLite(t *testing.T) {
	ctx := context.Background()
	database, err := db.New(ctx, db.Config{Driver: db.DriverSQLite, URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, Up(ctx, database, db.DialectSQLite))

	v, err := Version(ctx, database, db.DialectSQLite)
	require.NoError(t, err)
	require.EqualValues(t, 1, v)

	_, err = database.ExecContext(ctx, `SELECT id, owner_id, price, status FROM subscriptions`)
	require.NoError(t, err)

	// idempotent
	require.NoError(t, Up(ctx, database, db.DialectSQLite))

	require.NoError(t, Down(ctx, database, db.DialectSQLite))
	_, err = database.ExecContext(ctx, `SELECT id FROM subscriptions`)
	require.Error(t, err)
}

func TestUp_UnknownDialect(t *testing.T) {
	err := Up(context.Background(), nil, db.Dialect("mssql"))
	require.Error(t, err)
}
