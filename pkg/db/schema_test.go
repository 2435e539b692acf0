// pkg/db/schema_test.go
package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := Open(Config{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "data", "places.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestEnsureSchemaCreatesTables(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	require.NoError(t, EnsureSchema(ctx, database))

	for _, column := range []string{"user_id", "city", "created_at"} {
		ok, err := ColumnExists(ctx, database, "users", column)
		require.NoError(t, err)
		assert.True(t, ok, "users.%s should exist", column)
	}
	for _, column := range []string{"id", "user_id", "place_name", "address", "latitude", "longitude", "created_at"} {
		ok, err := ColumnExists(ctx, database, "places", column)
		require.NoError(t, err)
		assert.True(t, ok, "places.%s should exist", column)
	}

	ok, err := ColumnExists(ctx, database, "places", "altitude")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	require.NoError(t, EnsureSchema(ctx, database))

	_, err := database.ExecContext(ctx, `INSERT INTO users (user_id, city) VALUES (?, ?)`, 42, "Springfield")
	require.NoError(t, err)
	_, err = database.ExecContext(ctx,
		`INSERT INTO places (user_id, place_name, address, latitude, longitude) VALUES (?, ?, ?, ?, ?)`,
		42, "Coffee Shop", "Main St 5, Springfield", 39.78, -89.65)
	require.NoError(t, err)

	// Simulated restart.
	require.NoError(t, EnsureSchema(ctx, database))

	var city string
	require.NoError(t, database.GetContext(ctx, &city, `SELECT city FROM users WHERE user_id = ?`, 42))
	assert.Equal(t, "Springfield", city)

	var count int
	require.NoError(t, database.GetContext(ctx, &count, `SELECT COUNT(*) FROM places`))
	assert.Equal(t, 1, count)

	var lat float64
	require.NoError(t, database.GetContext(ctx, &lat, `SELECT latitude FROM places WHERE user_id = ?`, 42))
	assert.InDelta(t, 39.78, lat, 1e-9)
}

func TestEnsureSchemaAddsCoordinatesToLegacyPlaces(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	// First revision of the schema: no coordinate columns.
	_, err := database.ExecContext(ctx, `CREATE TABLE places (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		place_name TEXT,
		address TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx,
		`INSERT INTO places (user_id, place_name, address) VALUES (?, ?, ?)`,
		7, "Old Bookshop", "Elm St 1, Shelbyville")
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(ctx, database))
	require.NoError(t, EnsureSchema(ctx, database))

	for _, column := range placeCoordinateColumns {
		ok, err := ColumnExists(ctx, database, "places", column)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	var row struct {
		Name      string          `db:"place_name"`
		Address   string          `db:"address"`
		Latitude  sql.NullFloat64 `db:"latitude"`
		Longitude sql.NullFloat64 `db:"longitude"`
	}
	require.NoError(t, database.GetContext(ctx, &row,
		`SELECT place_name, address, latitude, longitude FROM places WHERE user_id = ?`, 7))
	assert.Equal(t, "Old Bookshop", row.Name)
	assert.Equal(t, "Elm St 1, Shelbyville", row.Address)
	assert.False(t, row.Latitude.Valid)
	assert.False(t, row.Longitude.Valid)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle", DSN: "whatever"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestDialectForDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   Dialect
	}{
		{DriverSQLite, DialectSQLite},
		{DriverPostgres, DialectPostgres},
		{DriverPgx, DialectPostgres},
	}
	for _, tt := range tests {
		got, err := DialectForDriver(tt.driver)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
