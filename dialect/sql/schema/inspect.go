package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/dialect"
	"github.com/syssam/modelgen/dialect/sql"
	"github.com/syssam/modelgen/schema/sqltype"
)

// Inspector reads table metadata from the database catalog instead of
// describing a query result set.
type Inspector struct {
	dialect string
	conn    schema.ExecQuerier

	mu  sync.Mutex
	drv migrate.Driver
}

// NewInspector returns a catalog inspector for the given driver.
func NewInspector(drv *sql.Driver) *Inspector {
	return &Inspector{dialect: drv.Dialect(), conn: drv.DB()}
}

// NewInspectorConn is like NewInspector but takes a raw connection.
func NewInspectorConn(dialectName string, conn schema.ExecQuerier) *Inspector {
	return &Inspector{dialect: dialect.Normalize(dialectName), conn: conn}
}

func (i *Inspector) driver() (migrate.Driver, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.drv != nil {
		return i.drv, nil
	}
	var (
		drv migrate.Driver
		err error
	)
	switch i.dialect {
	case dialect.SQLite:
		drv, err = sqlite.Open(i.conn)
	case dialect.MySQL:
		drv, err = mysql.Open(i.conn)
	case dialect.Postgres:
		drv, err = postgres.Open(i.conn)
	default:
		return nil, fmt.Errorf("sql/schema: unsupported dialect %q", i.dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("sql/schema: open atlas driver: %w", err)
	}
	i.drv = drv
	return drv, nil
}

// Introspect returns the columns of table in ordinal order. The table may be
// qualified with its schema, e.g. "public.users".
func (i *Inspector) Introspect(ctx context.Context, table string) ([]*load.Column, error) {
	if table == "" {
		return nil, modelgen.NewSchemaError(table, "empty table name", nil)
	}
	ns, name := splitTable(table)
	s, err := i.inspect(ctx, ns, name)
	if err != nil {
		return nil, modelgen.NewSchemaError(table, "inspect catalog", err)
	}
	t, ok := s.Table(name)
	if !ok {
		for _, st := range s.Tables {
			if strings.EqualFold(st.Name, name) {
				t, ok = st, true
				break
			}
		}
	}
	if !ok {
		return nil, modelgen.NewSchemaError(table, "table does not exist", nil)
	}
	return i.columns(t), nil
}

// Snapshot captures the given tables, or every table of the default schema
// when none is given.
func (i *Inspector) Snapshot(ctx context.Context, tables ...string) (*load.Snapshot, error) {
	snap := &load.Snapshot{
		Version: load.SnapshotVersion,
		Dialect: i.dialect,
		Created: time.Now().UTC(),
	}
	if len(tables) > 0 {
		for _, t := range tables {
			columns, err := i.Introspect(ctx, t)
			if err != nil {
				return nil, err
			}
			snap.Add(t, columns)
		}
		return snap, nil
	}
	s, err := i.inspect(ctx, "", "")
	if err != nil {
		return nil, modelgen.NewSchemaError("", "inspect catalog", err)
	}
	for _, t := range s.Tables {
		snap.Add(t.Name, i.columns(t))
	}
	return snap, nil
}

// Tables returns the sorted table names of the default schema.
func (i *Inspector) Tables(ctx context.Context) ([]string, error) {
	s, err := i.inspect(ctx, "", "")
	if err != nil {
		return nil, modelgen.NewSchemaError("", "inspect catalog", err)
	}
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (i *Inspector) inspect(ctx context.Context, ns, table string) (*schema.Schema, error) {
	drv, err := i.driver()
	if err != nil {
		return nil, err
	}
	opts := &schema.InspectOptions{}
	if table != "" {
		opts.Tables = []string{table}
	}
	return drv.InspectSchema(ctx, ns, opts)
}

func (i *Inspector) columns(t *schema.Table) []*load.Column {
	columns := make([]*load.Column, 0, len(t.Columns))
	for idx, c := range t.Columns {
		var raw string
		if c.Type != nil {
			raw = c.Type.Raw
		}
		columns = append(columns, &load.Column{
			Name:         c.Name,
			Code:         i.code(c.Type),
			Position:     idx + 1,
			DatabaseType: raw,
		})
	}
	return columns
}

// code converts an atlas column type to a standard SQL type code.
func (i *Inspector) code(ct *schema.ColumnType) sqltype.Code {
	if ct == nil || ct.Type == nil {
		return sqltype.Other
	}
	switch t := ct.Type.(type) {
	case *schema.StringType:
		switch strings.ToLower(t.T) {
		case "char", "character", "bpchar":
			return sqltype.Char
		case "nchar":
			return sqltype.NChar
		case "nvarchar":
			return sqltype.NVarchar
		case "clob":
			return sqltype.Clob
		}
		return sqltype.Varchar
	case *schema.IntegerType:
		// Unsigned types widen the same way the MySQL driver reports them.
		if t.Unsigned {
			if c := sql.TypeCode(i.dialect, "UNSIGNED "+t.T); c != sqltype.Other {
				return c
			}
		}
		switch strings.ToLower(t.T) {
		case "bigint", "int8", "bigserial":
			return sqltype.BigInt
		case "smallint", "int2", "smallserial":
			return sqltype.SmallInt
		case "tinyint":
			return sqltype.TinyInt
		}
		return sqltype.Integer
	case *schema.TimeType:
		switch strings.ToLower(t.T) {
		case "date", "year":
			return sqltype.Date
		case "time", "time without time zone":
			return sqltype.Time
		case "timetz", "time with time zone":
			return sqltype.TimeWithTimezone
		case "timestamptz", "timestamp with time zone":
			return sqltype.TimestampWithTimezone
		}
		return sqltype.Timestamp
	case *schema.DecimalType:
		if strings.EqualFold(t.T, "numeric") {
			return sqltype.Numeric
		}
		return sqltype.Decimal
	case *schema.FloatType:
		switch strings.ToLower(t.T) {
		case "real", "float4":
			return sqltype.Real
		case "float":
			return sqltype.Float
		}
		return sqltype.Double
	case *schema.BinaryType:
		switch strings.ToLower(t.T) {
		case "blob", "longblob", "mediumblob", "tinyblob":
			return sqltype.Blob
		case "varbinary":
			return sqltype.VarBinary
		}
		return sqltype.Binary
	case *schema.BoolType:
		return sqltype.Boolean
	case *schema.EnumType:
		return sqltype.Char
	default:
		return sql.TypeCode(i.dialect, ct.Raw)
	}
}

func splitTable(table string) (ns, name string) {
	if idx := strings.LastIndexByte(table, '.'); idx > 0 {
		return table[:idx], table[idx+1:]
	}
	return "", table
}
