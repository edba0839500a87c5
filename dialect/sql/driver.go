package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/modelgen/dialect"
)

// Querier is the read-only subset of a driver used for introspection.
type Querier interface {
	// Query runs the query and stores the result in v, which must be a *Rows.
	Query(ctx context.Context, query string, args, v any) error
	// Dialect returns the dialect of the underlying database.
	Dialect() string
}

// Driver is a Querier implementation for SQL based databases.
type Driver struct {
	Conn
	dialect string
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open wraps the database/sql.Open method and returns a Driver for the dialect.
// The dialect must match the name the database/sql driver was registered with.
func Open(dialect, source string) (*Driver, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return NewDriver(dialect, Conn{db, dialect}), nil
}

// OpenDB wraps the given database/sql.DB method with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// DB returns the underlying *sql.DB instance.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect returns the dialect the driver was opened with.
func (d Driver) Dialect() string {
	// The driver name may carry a suffix, e.g. sqlite3 or a wrapped driver name.
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Ping verifies the connection to the database is alive.
func (d *Driver) Ping(ctx context.Context) error { return d.DB().PingContext(ctx) }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements Querier given ExecQuerier.
type Conn struct {
	ExecQuerier
	dialect string
}

// Query implements the Querier.Query method.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Rows", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*vr = Rows{rows}
	return nil
}

// Dialect implements the Querier.Dialect method.
func (c Conn) Dialect() string { return c.dialect }

var _ Querier = (*Driver)(nil)

// Rows wraps the sql.Rows to avoid locks copy.
type Rows struct{ ColumnScanner }

// ColumnScanner is the interface that wraps the standard
// sql.Rows methods used for reading result sets.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	Scan(dest ...any) error
}
