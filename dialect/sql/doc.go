// Package sql provides the database access used by modelgen to read table
// metadata.
//
// A Driver wraps a database/sql connection and exposes the read-only Querier
// interface. The Introspector issues a query that selects every column of a
// table and matches no row, then derives column names, ordinal positions and
// standard SQL type codes from the result set description:
//
//	drv, err := sql.Open("postgres", dsn)
//	if err != nil {
//		return err
//	}
//	defer drv.Close()
//	columns, err := sql.NewIntrospector(drv).Introspect(ctx, "users")
//
// Drivers can be decorated with NewStatsDriver and NewDebugDriver to collect
// query statistics and log every statement.
package sql
