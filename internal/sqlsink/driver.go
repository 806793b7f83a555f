// Package sqlsink implements the SQL sink from spec.md §4.7: `{{name}}`
// placeholder expansion against an insert-statement template, producing
// driver-specific bound parameter markers, over github.com/jmoiron/sqlx.
package sqlsink

import "fmt"

// Driver identifies which SQL engine a SqlStorage target writes to. The
// marker style differs only between postgresql ($N) and everything else
// (?), per spec.md §4.7.
type Driver int

const (
	DriverSQLite Driver = iota
	DriverMySQL
	DriverMariaDB
	DriverPostgreSQL
)

func ParseDriver(s string) (Driver, error) {
	switch s {
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "mysql":
		return DriverMySQL, nil
	case "mariadb":
		return DriverMariaDB, nil
	case "postgresql", "postgres":
		return DriverPostgreSQL, nil
	default:
		return 0, fmt.Errorf("sqlsink: unknown driver %q", s)
	}
}

// sqlxDriverName is the driver name sqlx.Open/database/sql expects, per the
// registered driver in go-sqlite3, go-sql-driver/mysql, and lib/pq.
func (d Driver) sqlxDriverName() string {
	switch d {
	case DriverSQLite:
		return "sqlite3"
	case DriverMySQL, DriverMariaDB:
		return "mysql"
	case DriverPostgreSQL:
		return "postgres"
	default:
		return ""
	}
}

// nextMarker returns the parameter marker for the nth (1-indexed) bound
// argument in a statement: "$n" for PostgreSQL, "?" for every other driver.
func (d Driver) nextMarker(n int) string {
	if d == DriverPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
