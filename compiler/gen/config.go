package gen

import (
	"github.com/go-openapi/inflect"

	"github.com/syssam/modelgen/compiler/load"
)

// DefaultHeader is written at the top of every generated file.
const DefaultHeader = "Code generated by modelgen. DO NOT EDIT."

// TableNaming selects how a table name is derived from an entity name when
// the entity has no explicit table.
type TableNaming string

// Table naming strategies.
const (
	// TableNamingSimple uses the entity name as is: User => User.
	TableNamingSimple TableNaming = "simple"
	// TableNamingInflect uses pluralized snake case: OrderItem => order_items.
	TableNamingInflect TableNaming = "inflect"
)

// Config holds the options of the generation pipeline.
type Config struct {
	// Prefix is prepended to the entity name to form the unit name.
	// Defaults to DefaultPrefix.
	Prefix string
	// Target overrides the output directory. When empty, units are written
	// next to their source entity.
	Target string
	// Header is the generated-code comment of every file.
	Header string
	// TableNaming is the table naming strategy. Defaults to TableNamingSimple.
	TableNaming TableNaming
}

// TableName resolves the table the columns of the entity are read from.
// An explicit table always wins.
func (c *Config) TableName(e *load.Entity) string {
	if e.Table != "" {
		return e.Table
	}
	if c.TableNaming == TableNamingInflect {
		return inflect.Tableize(e.Name)
	}
	return e.Name
}

// HeaderComment returns the configured header or DefaultHeader.
func (c *Config) HeaderComment() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultHeader
}

// OutputDir returns the directory the unit of e is written to.
func (c *Config) OutputDir(e *load.Entity) string {
	if c.Target != "" {
		return c.Target
	}
	if e.Dir != "" {
		return e.Dir
	}
	return "."
}
