package gen

import "github.com/syssam/modelgen/schema/sqltype"

// SemanticType is the accessor-level category a column type falls into.
type SemanticType uint8

// Semantic types. Generic covers every SQL type without a typed accessor.
const (
	Generic SemanticType = iota
	Text
	Date
	Time
	Timestamp
	Integer
	Decimal
)

var semanticNames = [...]string{
	Generic:   "Generic",
	Text:      "Text",
	Date:      "Date",
	Time:      "Time",
	Timestamp: "Timestamp",
	Integer:   "Integer",
	Decimal:   "Decimal",
}

// String returns the name of the semantic type.
func (t SemanticType) String() string {
	if int(t) < len(semanticNames) {
		return semanticNames[t]
	}
	return "SemanticType(invalid)"
}

// AccessorKind selects which typed read/write operation of the base entity
// an accessor delegates to. The empty kind selects the generic operation.
type AccessorKind string

// Accessor kinds.
const (
	KindString    AccessorKind = "String"
	KindDate      AccessorKind = "Date"
	KindTime      AccessorKind = "Time"
	KindTimestamp AccessorKind = "Timestamp"
	KindInteger   AccessorKind = "Integer"
	KindDouble    AccessorKind = "Double"
	KindGeneric   AccessorKind = ""
)

// Typed reports if the kind names a typed operation.
func (k AccessorKind) Typed() bool { return k != KindGeneric }

// MapType maps a SQL type code to its semantic type and accessor kind.
// Every code maps to exactly one pair; codes without a typed accessor fall
// back to Generic.
func MapType(code sqltype.Code) (SemanticType, AccessorKind) {
	switch code {
	case sqltype.Char, sqltype.Varchar, sqltype.LongVarchar,
		sqltype.NChar, sqltype.NVarchar, sqltype.LongNVarchar:
		return Text, KindString
	case sqltype.Date:
		return Date, KindDate
	case sqltype.Time, sqltype.TimeWithTimezone:
		return Time, KindTime
	case sqltype.Timestamp, sqltype.TimestampWithTimezone:
		return Timestamp, KindTimestamp
	case sqltype.Integer:
		return Integer, KindInteger
	case sqltype.Decimal, sqltype.Double:
		return Decimal, KindDouble
	default:
		return Generic, KindGeneric
	}
}
