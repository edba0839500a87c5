package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/modelgen/dialect"
	"github.com/syssam/modelgen/schema/sqltype"
)

func TestTypeCode(t *testing.T) {
	tests := []struct {
		dialect  string
		typeName string
		want     sqltype.Code
	}{
		{dialect.Postgres, "int4", sqltype.Integer},
		{dialect.Postgres, "VARCHAR", sqltype.Varchar},
		{dialect.Postgres, "BPCHAR", sqltype.Char},
		{dialect.Postgres, "TIMESTAMPTZ", sqltype.TimestampWithTimezone},
		{dialect.Postgres, "_INT4", sqltype.Array},
		{dialect.Postgres, "text[]", sqltype.Array},
		{dialect.Postgres, "JSONB", sqltype.Other},
		{dialect.Postgres, "DECIMAL", sqltype.Decimal},
		{dialect.MySQL, "DATETIME", sqltype.Timestamp},
		{dialect.MySQL, "UNSIGNED INT", sqltype.BigInt},
		{dialect.MySQL, "decimal(10,2)", sqltype.Decimal},
		{dialect.MySQL, "LONGBLOB", sqltype.LongVarBinary},
		{"sqlite3", "VARCHAR(255)", sqltype.Varchar},
		{dialect.SQLite, "DECIMAL(10, 2)", sqltype.Decimal},
		{dialect.SQLite, "UNSIGNED BIG INT", sqltype.Integer},
		{dialect.SQLite, "VARYING CHARACTER(20)", sqltype.Varchar},
		{dialect.SQLite, "DOUBLE PRECISION", sqltype.Real},
		{dialect.SQLite, "", sqltype.Null},
		{dialect.SQLite, "BOOLISH", sqltype.Numeric},
		{"oracle", "NUMBER", sqltype.Other},
		{"oracle", "DATE", sqltype.Date},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.typeName, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeCode(tt.dialect, tt.typeName))
		})
	}
}

func TestNormalizeTypeName(t *testing.T) {
	assert.Equal(t, "VARCHAR", normalizeTypeName(" varchar(255) "))
	assert.Equal(t, "INT UNSIGNED", normalizeTypeName("int(11)  unsigned"))
	assert.Equal(t, "DECIMAL", normalizeTypeName("decimal(10, 2)"))
	assert.Equal(t, "TEXT", normalizeTypeName("text"))
}
