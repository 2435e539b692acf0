// pkg/db/dialect.go
package db

import "fmt"

// Dialect selects SQL flavour for DDL and catalog probes.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectForDriver maps a database/sql driver name to its dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite:
		return DialectSQLite, nil
	case DriverPostgres, DriverPgx:
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

type schemaDDL struct {
	createUsers  string
	createPlaces string
	floatType    string
	columnProbe  string // args: table, column
}

func (d Dialect) ddl() schemaDDL {
	if d == DialectPostgres {
		return schemaDDL{
			createUsers: `CREATE TABLE IF NOT EXISTS users (
				user_id    BIGINT PRIMARY KEY,
				city       TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			createPlaces: `CREATE TABLE IF NOT EXISTS places (
				id         BIGSERIAL PRIMARY KEY,
				user_id    BIGINT REFERENCES users (user_id),
				place_name TEXT,
				address    TEXT,
				latitude   DOUBLE PRECISION,
				longitude  DOUBLE PRECISION,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			floatType: "DOUBLE PRECISION",
			columnProbe: `SELECT COUNT(*) FROM information_schema.columns
				WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2`,
		}
	}
	return schemaDDL{
		createUsers: `CREATE TABLE IF NOT EXISTS users (
			user_id    INTEGER PRIMARY KEY,
			city       TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		createPlaces: `CREATE TABLE IF NOT EXISTS places (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER,
			place_name TEXT,
			address    TEXT,
			latitude   REAL,
			longitude  REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users (user_id)
		)`,
		floatType:   "REAL",
		columnProbe: `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
	}
}
