// pkg/db/schema.go
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Optional columns added to places after the first schema revision.
var placeCoordinateColumns = []string{"latitude", "longitude"}

type schemaExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// EnsureSchema creates the users and places tables when absent and adds the
// coordinate columns to a pre-existing places table. Existing rows are never
// touched; old rows read the new columns as NULL. Safe to run on every start.
func EnsureSchema(ctx context.Context, database *sqlx.DB) error {
	dialect, err := DialectForDriver(database.DriverName())
	if err != nil {
		return err
	}
	ddl := dialect.ddl()

	txController, err := BeginTx(ctx, database)
	if err != nil {
		return fmt.Errorf("ensure schema: failed to begin transaction: %w", err)
	}
	defer RollbackTx(txController)

	q, ok := txController.(schemaExecutor)
	if !ok {
		return fmt.Errorf("ensure schema: transaction controller cannot execute statements")
	}

	for _, stmt := range []string{ddl.createUsers, ddl.createPlaces} {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: create table: %w", err)
		}
	}

	for _, column := range placeCoordinateColumns {
		exists, err := columnExists(ctx, q, ddl, "places", column)
		if err != nil {
			return fmt.Errorf("ensure schema: probe places.%s: %w", column, err)
		}
		if exists {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE places ADD COLUMN %s %s", column, ddl.floatType)
		if _, err := q.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("ensure schema: add places.%s: %w", column, err)
		}
	}

	if _, err := q.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_places_user_created ON places (user_id, created_at)`); err != nil {
		return fmt.Errorf("ensure schema: create index: %w", err)
	}

	if err := CommitTx(txController); err != nil {
		return fmt.Errorf("ensure schema: failed to commit: %w", err)
	}
	return nil
}

// ColumnExists reports whether table has the named column.
func ColumnExists(ctx context.Context, database *sqlx.DB, table, column string) (bool, error) {
	dialect, err := DialectForDriver(database.DriverName())
	if err != nil {
		return false, err
	}
	return columnExists(ctx, database, dialect.ddl(), table, column)
}

func columnExists(ctx context.Context, q schemaExecutor, ddl schemaDDL, table, column string) (bool, error) {
	var count int
	if err := q.GetContext(ctx, &count, ddl.columnProbe, table, column); err != nil {
		return false, err
	}
	return count > 0, nil
}
