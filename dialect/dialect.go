package dialect

import (
	"fmt"
	"strings"
)

// Dialect names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// drivers maps database/sql driver names to their dialect.
var drivers = map[string]string{
	"mysql":    MySQL,
	"postgres": Postgres,
	"pgx":      Postgres,
	"sqlite":   SQLite,
	"sqlite3":  SQLite,
}

// FromDriver returns the dialect of a database/sql driver name. Wrapped
// drivers, e.g. "pgx-otel", are matched by prefix.
func FromDriver(name string) (string, error) {
	if d, ok := drivers[name]; ok {
		return d, nil
	}
	for driver, d := range drivers {
		if strings.HasPrefix(name, driver) {
			return d, nil
		}
	}
	return "", fmt.Errorf("dialect: unsupported driver %q", name)
}

// DriverName returns the default database/sql driver name of a dialect.
func DriverName(dialect string) (string, error) {
	switch dialect {
	case MySQL, Postgres, SQLite:
		return dialect, nil
	default:
		return "", fmt.Errorf("dialect: unsupported dialect %q", dialect)
	}
}
