package sql

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/dialect"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// QuoteTable returns the table name ready to be embedded in a query. Plain
// identifiers are left unquoted, so the database applies its usual case
// folding; anything else is quoted for the dialect.
func QuoteTable(dialectName, table string) string {
	if isValidIdentifier(table) {
		return table
	}
	switch dialect.Normalize(dialectName) {
	case dialect.Postgres:
		return pq.QuoteIdentifier(table)
	case dialect.MySQL:
		return "`" + strings.ReplaceAll(table, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(table, `"`, `""`) + `"`
	}
}

// Introspector reads column metadata from the result set of a query that
// selects every column of a table and matches no row.
type Introspector struct {
	drv Querier
}

// NewIntrospector returns an introspector querying through drv.
func NewIntrospector(drv Querier) *Introspector {
	return &Introspector{drv: drv}
}

// Introspect returns the columns of table in ordinal order. Failures,
// including a missing table, are reported as *modelgen.SchemaError.
func (i *Introspector) Introspect(ctx context.Context, table string) (columns []*load.Column, rerr error) {
	if table == "" {
		return nil, modelgen.NewSchemaError(table, "empty table name", nil)
	}
	query := fmt.Sprintf("SELECT * FROM %s WHERE 1=0", QuoteTable(i.drv.Dialect(), table))
	rows := &Rows{}
	if err := i.drv.Query(ctx, query, []any{}, rows); err != nil {
		if IsMissingTable(err) {
			return nil, modelgen.NewSchemaError(table, "table does not exist", err)
		}
		return nil, modelgen.NewSchemaError(table, "", err)
	}
	defer func() {
		if err := rows.Close(); err != nil && rerr == nil {
			rerr = modelgen.NewSchemaError(table, "close rows", err)
		}
	}()
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, modelgen.NewSchemaError(table, "read column types", err)
	}
	for rows.Next() {
		// WHERE 1=0 matches nothing; drain in case the engine ignores it.
	}
	if err := rows.Err(); err != nil {
		return nil, modelgen.NewSchemaError(table, "", err)
	}
	columns = make([]*load.Column, 0, len(types))
	for idx, ct := range types {
		dbType := ct.DatabaseTypeName()
		columns = append(columns, &load.Column{
			Name:         ct.Name(),
			Code:         TypeCode(i.drv.Dialect(), dbType),
			Position:     idx + 1,
			DatabaseType: dbType,
		})
	}
	return columns, nil
}

// IsMissingTable reports whether err was caused by a table that does not
// exist, for the drivers supported by modelgen.
func IsMissingTable(err error) bool {
	var (
		pqErr    *pq.Error
		mysqlErr *mysql.MySQLError
	)
	switch {
	case errors.As(err, &pqErr):
		// undefined_table
		return pqErr.Code == "42P01"
	case errors.As(err, &mysqlErr):
		// ER_NO_SUCH_TABLE
		return mysqlErr.Number == 1146
	default:
		// SQLite reports the condition in the message only.
		return strings.Contains(err.Error(), "no such table")
	}
}
