// Package dialect names the database dialects modelgen can read table
// metadata from.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - Postgres: PostgreSQL database (github.com/lib/pq)
//   - MySQL: MySQL/MariaDB database (github.com/go-sql-driver/mysql)
//   - SQLite: SQLite database (modernc.org/sqlite)
//
// # Dialect Constants
//
// Each dialect is identified by a constant string, which is also the
// database/sql driver name registered by the driver package:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/syssam/modelgen/dialect"
//	    "github.com/syssam/modelgen/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	columns, err := sql.NewIntrospector(drv).Introspect(ctx, "users")
//
// # Sub-packages
//
// The dialect package contains several sub-packages:
//
//   - dialect/sql: driver wrapper and result-set based column introspection
//   - dialect/sql/schema: catalog based column introspection using Atlas
package dialect
