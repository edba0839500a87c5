package sql

import (
	"strings"

	"github.com/syssam/modelgen/dialect"
	"github.com/syssam/modelgen/schema/sqltype"
)

// Database type names, as reported by the drivers, mapped to standard codes.
var (
	postgresTypes = map[string]sqltype.Code{
		"INT2":        sqltype.SmallInt,
		"INT4":        sqltype.Integer,
		"INT8":        sqltype.BigInt,
		"SERIAL":      sqltype.Integer,
		"BIGSERIAL":   sqltype.BigInt,
		"OID":         sqltype.BigInt,
		"NUMERIC":     sqltype.Numeric,
		"FLOAT4":      sqltype.Real,
		"FLOAT8":      sqltype.Double,
		"MONEY":       sqltype.Double,
		"BOOL":        sqltype.Bit,
		"BPCHAR":      sqltype.Char,
		"CHAR":        sqltype.Char,
		"VARCHAR":     sqltype.Varchar,
		"TEXT":        sqltype.Varchar,
		"NAME":        sqltype.Varchar,
		"DATE":        sqltype.Date,
		"TIME":        sqltype.Time,
		"TIMETZ":      sqltype.TimeWithTimezone,
		"TIMESTAMP":   sqltype.Timestamp,
		"TIMESTAMPTZ": sqltype.TimestampWithTimezone,
		"BYTEA":       sqltype.Binary,
		"XML":         sqltype.SQLXML,
		"REFCURSOR":   sqltype.RefCursor,
	}
	mysqlTypes = map[string]sqltype.Code{
		"BIT":                sqltype.Bit,
		"TINYINT":            sqltype.TinyInt,
		"SMALLINT":           sqltype.SmallInt,
		"MEDIUMINT":          sqltype.Integer,
		"INT":                sqltype.Integer,
		"INTEGER":            sqltype.Integer,
		"BIGINT":             sqltype.BigInt,
		"UNSIGNED TINYINT":   sqltype.TinyInt,
		"UNSIGNED SMALLINT":  sqltype.SmallInt,
		"UNSIGNED MEDIUMINT": sqltype.Integer,
		"UNSIGNED INT":       sqltype.BigInt,
		"UNSIGNED INTEGER":   sqltype.BigInt,
		"UNSIGNED BIGINT":    sqltype.BigInt,
		"DECIMAL":            sqltype.Decimal,
		"FLOAT":              sqltype.Real,
		"DOUBLE":             sqltype.Double,
		"CHAR":               sqltype.Char,
		"VARCHAR":            sqltype.Varchar,
		"TINYTEXT":           sqltype.Varchar,
		"TEXT":               sqltype.LongVarchar,
		"MEDIUMTEXT":         sqltype.LongVarchar,
		"LONGTEXT":           sqltype.LongVarchar,
		"JSON":               sqltype.LongVarchar,
		"ENUM":               sqltype.Char,
		"SET":                sqltype.Char,
		"DATE":               sqltype.Date,
		"YEAR":               sqltype.Date,
		"TIME":               sqltype.Time,
		"DATETIME":           sqltype.Timestamp,
		"TIMESTAMP":          sqltype.Timestamp,
		"BINARY":             sqltype.Binary,
		"VARBINARY":          sqltype.VarBinary,
		"TINYBLOB":           sqltype.VarBinary,
		"BLOB":               sqltype.LongVarBinary,
		"MEDIUMBLOB":         sqltype.LongVarBinary,
		"LONGBLOB":           sqltype.LongVarBinary,
		"GEOMETRY":           sqltype.Binary,
	}
	sqliteTypes = map[string]sqltype.Code{
		"INT":       sqltype.Integer,
		"INTEGER":   sqltype.Integer,
		"TINYINT":   sqltype.TinyInt,
		"SMALLINT":  sqltype.SmallInt,
		"BIGINT":    sqltype.BigInt,
		"DECIMAL":   sqltype.Decimal,
		"NUMERIC":   sqltype.Numeric,
		"DOUBLE":    sqltype.Double,
		"FLOAT":     sqltype.Float,
		"REAL":      sqltype.Real,
		"BOOLEAN":   sqltype.Boolean,
		"CHAR":      sqltype.Char,
		"VARCHAR":   sqltype.Varchar,
		"NCHAR":     sqltype.NChar,
		"NVARCHAR":  sqltype.NVarchar,
		"TEXT":      sqltype.Varchar,
		"CLOB":      sqltype.Clob,
		"DATE":      sqltype.Date,
		"TIME":      sqltype.Time,
		"DATETIME":  sqltype.Timestamp,
		"TIMESTAMP": sqltype.Timestamp,
		"BLOB":      sqltype.Blob,
	}
)

// normalizeTypeName upper-cases a database type name and strips its
// modifiers: "varchar(255)" => "VARCHAR", "int unsigned" is kept as is.
func normalizeTypeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		rest := ""
		if j := strings.IndexByte(name[i:], ')'); j >= 0 {
			rest = name[i+j+1:]
		}
		name = strings.TrimSpace(name[:i] + rest)
	}
	return strings.Join(strings.Fields(name), " ")
}

// TypeCode resolves a database type name reported by the driver of the
// given dialect to a standard SQL type code. Unknown names resolve to
// sqltype.Other.
func TypeCode(dialectName, typeName string) sqltype.Code {
	name := normalizeTypeName(typeName)
	var types map[string]sqltype.Code
	switch dialect.Normalize(dialectName) {
	case dialect.Postgres:
		if strings.HasPrefix(name, "_") || strings.HasSuffix(name, "[]") {
			return sqltype.Array
		}
		types = postgresTypes
	case dialect.MySQL:
		types = mysqlTypes
	case dialect.SQLite:
		if c, ok := sqliteTypes[name]; ok {
			return c
		}
		return sqliteAffinity(name)
	}
	if c, ok := types[name]; ok {
		return c
	}
	if c, ok := sqltype.Parse(name); ok {
		return c
	}
	return sqltype.Other
}

// sqliteAffinity applies the SQLite type affinity rules to a declared type.
func sqliteAffinity(name string) sqltype.Code {
	switch {
	case name == "":
		return sqltype.Null
	case strings.Contains(name, "INT"):
		return sqltype.Integer
	case strings.Contains(name, "CHAR"), strings.Contains(name, "CLOB"), strings.Contains(name, "TEXT"):
		return sqltype.Varchar
	case strings.Contains(name, "BLOB"):
		return sqltype.Blob
	case strings.Contains(name, "REAL"), strings.Contains(name, "FLOA"), strings.Contains(name, "DOUB"):
		return sqltype.Real
	default:
		return sqltype.Numeric
	}
}
