package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/dialect"
	"github.com/syssam/modelgen/schema/sqltype"
)

func TestIntrospect(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT * FROM users WHERE 1=0").
		WillReturnRows(mock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("id").OfType("INT4", int32(0)),
			sqlmock.NewColumn("user_name").OfType("VARCHAR", ""),
			sqlmock.NewColumn("created_at").OfType("TIMESTAMPTZ", time.Time{}),
			sqlmock.NewColumn("payload").OfType("BYTEA", []byte(nil)),
		))

	columns, err := NewIntrospector(OpenDB(dialect.Postgres, db)).Introspect(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []*load.Column{
		{Name: "id", Code: sqltype.Integer, Position: 1, DatabaseType: "INT4"},
		{Name: "user_name", Code: sqltype.Varchar, Position: 2, DatabaseType: "VARCHAR"},
		{Name: "created_at", Code: sqltype.TimestampWithTimezone, Position: 3, DatabaseType: "TIMESTAMPTZ"},
		{Name: "payload", Code: sqltype.Binary, Position: 4, DatabaseType: "BYTEA"},
	}, columns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIntrospectErrors(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		_, err = NewIntrospector(OpenDB(dialect.Postgres, db)).Introspect(context.Background(), "")
		assert.True(t, modelgen.IsSchemaError(err))
	})

	t.Run("missing table", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT * FROM "order items" WHERE 1=0`).
			WillReturnError(&pq.Error{Code: "42P01", Message: `relation "order items" does not exist`})

		_, err = NewIntrospector(OpenDB(dialect.Postgres, db)).Introspect(context.Background(), "order items")
		var se *modelgen.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "order items", se.Table)
		assert.Equal(t, "table does not exist", se.Message)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

		_, err = NewIntrospector(OpenDB(dialect.MySQL, db)).Introspect(context.Background(), "users")
		assert.True(t, modelgen.IsSchemaError(err))
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestIntrospectSQLite(t *testing.T) {
	drv, err := Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()
	drv.DB().SetMaxOpenConns(1)

	ctx := context.Background()
	_, err = drv.DB().ExecContext(ctx, `CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		user_name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP,
		born DATE,
		balance DECIMAL(10, 2),
		avatar BLOB
	)`)
	require.NoError(t, err)

	columns, err := NewIntrospector(drv).Introspect(ctx, "users")
	require.NoError(t, err)
	require.Len(t, columns, 6)

	got := make(map[string]sqltype.Code, len(columns))
	for i, c := range columns {
		assert.Equal(t, i+1, c.Position)
		got[c.Name] = c.Code
	}
	assert.Equal(t, map[string]sqltype.Code{
		"id":         sqltype.Integer,
		"user_name":  sqltype.Varchar,
		"created_at": sqltype.Timestamp,
		"born":       sqltype.Date,
		"balance":    sqltype.Decimal,
		"avatar":     sqltype.Blob,
	}, got)
	assert.Equal(t, "user_name", columns[1].Name)

	_, err = NewIntrospector(drv).Introspect(ctx, "missing")
	var se *modelgen.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "table does not exist", se.Message)
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		dialect, table, want string
	}{
		{dialect.Postgres, "users", "users"},
		{dialect.Postgres, "public.users", "public.users"},
		{dialect.Postgres, "Order Items", `"Order Items"`},
		{dialect.Postgres, `we"ird`, `"we""ird"`},
		{dialect.MySQL, "order-items", "`order-items`"},
		{dialect.MySQL, "a`b", "`a``b`"},
		{dialect.SQLite, "1st", `"1st"`},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.dialect, tt.table), func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteTable(tt.dialect, tt.table))
		})
	}
}

func TestIsMissingTable(t *testing.T) {
	assert.True(t, IsMissingTable(&pq.Error{Code: "42P01"}))
	assert.False(t, IsMissingTable(&pq.Error{Code: "42501"}))
	assert.True(t, IsMissingTable(fmt.Errorf("wrap: %w", &mysql.MySQLError{Number: 1146})))
	assert.False(t, IsMissingTable(&mysql.MySQLError{Number: 1045}))
	assert.True(t, IsMissingTable(errors.New("SQL logic error: no such table: users (1)")))
	assert.False(t, IsMissingTable(errors.New("database is locked")))
}
