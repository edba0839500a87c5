package dialect

import "strings"

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Normalize maps a dialect, driver name or alias to one of the dialect
// constants. Unknown names are returned lower-cased.
//
//	Normalize("postgresql") // postgres
//	Normalize("sqlite3")    // sqlite
//	Normalize("MariaDB")    // mysql
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "postgres", "postgresql", "pq", "pgx":
		return Postgres
	case "mysql", "mariadb":
		return MySQL
	case "sqlite", "sqlite3":
		return SQLite
	}
	return name
}

// Supported reports if the dialect is one of the dialect constants.
func Supported(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres:
		return true
	}
	return false
}
