// Package load holds the descriptors the generator consumes: columns read
// from a live table or a snapshot, and the source entities discovered in
// user packages.
package load

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/syssam/modelgen/schema/sqltype"
)

// Column describes a single column of a table, as reported by the schema
// introspector. Columns are produced once per introspection call and are
// never modified afterwards.
type Column struct {
	Name         string       `msgpack:"name"`
	Code         sqltype.Code `msgpack:"code"`
	Position     int          `msgpack:"position"`          // 1-based ordinal position.
	DatabaseType string       `msgpack:"db_type,omitempty"` // Engine type name, informational only.
}

// String implements the fmt.Stringer interface.
func (c *Column) String() string {
	if c.DatabaseType != "" {
		return fmt.Sprintf("%s %s (%s)", c.Name, c.Code, c.DatabaseType)
	}
	return fmt.Sprintf("%s %s", c.Name, c.Code)
}

// Table is the set of columns of one table in ordinal order.
type Table struct {
	Name    string    `msgpack:"name"`
	Columns []*Column `msgpack:"columns"`
}

// Entity identifies a source entity: the user type whose generated
// accessor unit is placed next to it.
type Entity struct {
	// Name is the simple type name, e.g. "User".
	Name string `yaml:"name"`
	// Package is the import path (or namespace) of the entity.
	Package string `yaml:"package,omitempty"`
	// PkgName is the package clause name. Defaults to the last
	// element of Package, or of Dir without a Package.
	PkgName string `yaml:"-"`
	// Dir is the directory the generated unit is written to.
	Dir string `yaml:"dir,omitempty"`
	// Table optionally overrides the table name.
	Table string `yaml:"table,omitempty"`
	// Connection optionally overrides the connection properties file.
	Connection string `yaml:"connection,omitempty"`
	// Pos is the source position of the declaration, if discovered.
	Pos string `yaml:"-"`
}

// PackageName returns the package clause name of the entity.
func (e *Entity) PackageName() string {
	if e.PkgName != "" {
		return e.PkgName
	}
	if e.Package == "" && e.Dir != "" {
		return filepath.Base(e.Dir)
	}
	pkg := e.Package
	if i := strings.LastIndexAny(pkg, "/."); i >= 0 {
		pkg = pkg[i+1:]
	}
	return pkg
}

// String implements the fmt.Stringer interface.
func (e *Entity) String() string {
	if e.Package == "" {
		return e.Name
	}
	return e.Package + "." + e.Name
}
