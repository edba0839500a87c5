// Package sqltype defines the standard SQL type identifiers reported by
// database drivers for table columns.
//
// The numbering follows the widely used java.sql.Types constants, so codes
// read from a metadata catalog, a snapshot file or a driver can be compared
// directly:
//
//	sqltype.Varchar   // 12
//	sqltype.Integer   // 4
//	sqltype.Timestamp // 93
package sqltype

import (
	"strconv"
	"strings"
)

// Code is a standard SQL type identifier.
type Code int32

// Standard SQL type identifiers.
const (
	Bit                   Code = -7
	TinyInt               Code = -6
	SmallInt              Code = 5
	Integer               Code = 4
	BigInt                Code = -5
	Float                 Code = 6
	Real                  Code = 7
	Double                Code = 8
	Numeric               Code = 2
	Decimal               Code = 3
	Char                  Code = 1
	Varchar               Code = 12
	LongVarchar           Code = -1
	Date                  Code = 91
	Time                  Code = 92
	Timestamp             Code = 93
	Binary                Code = -2
	VarBinary             Code = -3
	LongVarBinary         Code = -4
	Null                  Code = 0
	Other                 Code = 1111
	JavaObject            Code = 2000
	Distinct              Code = 2001
	Struct                Code = 2002
	Array                 Code = 2003
	Blob                  Code = 2004
	Clob                  Code = 2005
	Ref                   Code = 2006
	DataLink              Code = 70
	Boolean               Code = 16
	RowID                 Code = -8
	NChar                 Code = -15
	NVarchar              Code = -9
	LongNVarchar          Code = -16
	NClob                 Code = 2011
	SQLXML                Code = 2009
	RefCursor             Code = 2012
	TimeWithTimezone      Code = 2013
	TimestampWithTimezone Code = 2014
)

var names = map[Code]string{
	Bit:                   "BIT",
	TinyInt:               "TINYINT",
	SmallInt:              "SMALLINT",
	Integer:               "INTEGER",
	BigInt:                "BIGINT",
	Float:                 "FLOAT",
	Real:                  "REAL",
	Double:                "DOUBLE",
	Numeric:               "NUMERIC",
	Decimal:               "DECIMAL",
	Char:                  "CHAR",
	Varchar:               "VARCHAR",
	LongVarchar:           "LONGVARCHAR",
	Date:                  "DATE",
	Time:                  "TIME",
	Timestamp:             "TIMESTAMP",
	Binary:                "BINARY",
	VarBinary:             "VARBINARY",
	LongVarBinary:         "LONGVARBINARY",
	Null:                  "NULL",
	Other:                 "OTHER",
	JavaObject:            "JAVA_OBJECT",
	Distinct:              "DISTINCT",
	Struct:                "STRUCT",
	Array:                 "ARRAY",
	Blob:                  "BLOB",
	Clob:                  "CLOB",
	Ref:                   "REF",
	DataLink:              "DATALINK",
	Boolean:               "BOOLEAN",
	RowID:                 "ROWID",
	NChar:                 "NCHAR",
	NVarchar:              "NVARCHAR",
	LongNVarchar:          "LONGNVARCHAR",
	NClob:                 "NCLOB",
	SQLXML:                "SQLXML",
	RefCursor:             "REF_CURSOR",
	TimeWithTimezone:      "TIME_WITH_TIMEZONE",
	TimestampWithTimezone: "TIMESTAMP_WITH_TIMEZONE",
}

// String returns the standard name of the code, or its number for codes
// outside the standard set.
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports if c is one of the standard codes.
func (c Code) Valid() bool {
	_, ok := names[c]
	return ok
}

// Parse returns the code for a standard name such as "VARCHAR" or
// "timestamp_with_timezone". Matching ignores case.
func Parse(name string) (Code, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for c, n := range names {
		if n == name {
			return c, true
		}
	}
	return Other, false
}
