// pkg/db/db.go
package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver registered as "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver registered as "postgres"
	_ "modernc.org/sqlite" // SQLite driver registered as "sqlite"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know about.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// Config holds database connection configuration.
type Config struct {
	Driver string // One of DriverSQLite, DriverPostgres, DriverPgx
	DSN    string // File path for SQLite, connection string otherwise
}

// Open connects to the configured database and verifies the connection.
// For SQLite the parent directory of the database file is created if missing.
func Open(cfg Config) (*sqlx.DB, error) {
	dialect, err := DialectForDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if dialect == DialectSQLite {
		if dsn, err = prepareSQLite(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	if dialect == DialectSQLite {
		// A single writer avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	return db, nil
}

func prepareSQLite(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("sqlite database path is empty")
	}
	file := strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(file, '?'); i >= 0 {
		file = file[:i]
	}
	if dir := filepath.Dir(file); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	if strings.Contains(path, "?") {
		return path, nil
	}
	return path + "?_pragma=busy_timeout(5000)", nil
}
