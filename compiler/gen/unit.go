package gen

import (
	"github.com/syssam/modelgen/compiler/load"
)

// DefaultPrefix is prepended to the source entity name to form the name of
// the generated unit: User => ModelUser.
const DefaultPrefix = "Model"

// The following types are consumed by the render targets.
type (
	// BaseRef is a symbolic reference to the base entity the generated
	// unit extends. The base entity offers keyed read/write operations,
	// one pair per AccessorKind plus an untyped pair.
	BaseRef struct {
		// Package is the import path (or namespace) of the base entity.
		Package string
		// Name is the type name of the base entity.
		Name string
		// Read and Write are the operation name prefixes; a typed
		// operation appends the accessor kind: getString, setInteger.
		Read, Write string
	}

	// Accessor is the getter/setter pair synthesized for one column.
	Accessor struct {
		// Column is the raw column name, used verbatim as the key of the
		// base entity operations.
		Column string
		Type   SemanticType
		Kind   AccessorKind
		// Getter, Setter and Param are the canonical accessor names:
		// getUserId, setUserId and UserId for the column user_id.
		Getter string
		Setter string
		Param  string
	}

	// Unit is a generated unit of declarations: one type extending the base
	// entity, carrying only the column accessors.
	Unit struct {
		// Name is the type name of the unit, prefix + Entity.
		Name string
		// Package is the package (or namespace) of the source entity.
		Package string
		// PkgName is the package clause name, for targets that need one.
		PkgName string
		// Entity is the simple name of the source entity.
		Entity string
		// Table the columns were read from. Informational only.
		Table     string
		Base      BaseRef
		Accessors []*Accessor
	}
)

// ReadOp returns the base operation used by the accessor getter.
func (b BaseRef) ReadOp(k AccessorKind) string { return b.Read + string(k) }

// WriteOp returns the base operation used by the accessor setter.
func (b BaseRef) WriteOp(k AccessorKind) string { return b.Write + string(k) }

// NewAccessor derives the accessor pair of a column. Names depend only on
// the column name and types only on its SQL type code.
func NewAccessor(c *load.Column) *Accessor {
	typ, kind := MapType(c.Code)
	name := ToPascalCase(c.Name)
	return &Accessor{
		Column: c.Name,
		Type:   typ,
		Kind:   kind,
		Getter: "get" + name,
		Setter: "set" + name,
		Param:  ToCamelCase(c.Name),
	}
}

// Synthesize builds the unit for a source entity from its table columns.
// One accessor is produced per column, in column order. A table without
// columns yields a unit without accessors.
func Synthesize(entity *load.Entity, base BaseRef, columns []*load.Column) *Unit {
	return (&Config{Prefix: DefaultPrefix}).Synthesize(entity, base, columns)
}

// Synthesize builds the unit using the configured prefix.
func (c *Config) Synthesize(entity *load.Entity, base BaseRef, columns []*load.Column) *Unit {
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	u := &Unit{
		Name:      prefix + entity.Name,
		Package:   entity.Package,
		PkgName:   entity.PackageName(),
		Entity:    entity.Name,
		Table:     entity.Table,
		Base:      base,
		Accessors: make([]*Accessor, 0, len(columns)),
	}
	for _, col := range columns {
		u.Accessors = append(u.Accessors, NewAccessor(col))
	}
	return u
}
