// Package java renders generated units as ActiveJDBC model classes: an
// abstract class extending org.javalite.activejdbc.Model with one getter and
// setter per column.
package java

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"text/template"
	"unicode"

	"github.com/syssam/modelgen/compiler/gen"
)

// Name of the target.
const Name = "java"

// DefaultBase references the ActiveJDBC Model class.
var DefaultBase = gen.BaseRef{
	Package: "org.javalite.activejdbc",
	Name:    "Model",
	Read:    "get",
	Write:   "set",
}

//go:embed template/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("java").
	Funcs(template.FuncMap{"quote": quote}).
	ParseFS(templateFS, "template/*.tmpl"))

// Target renders Java source from an embedded template.
type Target struct {
	base   gen.BaseRef
	header string
}

func init() { gen.RegisterTarget(New()) }

// New returns a Java target extending DefaultBase.
func New() *Target { return &Target{base: DefaultBase, header: gen.DefaultHeader} }

// WithBase returns a copy of the target extending a custom base class.
func (t *Target) WithBase(base gen.BaseRef) *Target {
	c := *t
	c.base = base
	return &c
}

// WithHeader returns a copy of the target using a custom header comment.
func (t *Target) WithHeader(header string) *Target {
	c := *t
	c.header = header
	return &c
}

// SetHeader implements gen.HeaderSetter.
func (t *Target) SetHeader(header string) gen.Target { return t.WithHeader(header) }

// Name implements gen.Target.
func (*Target) Name() string { return Name }

// Base implements gen.Target.
func (t *Target) Base() gen.BaseRef { return t.base }

// FileName implements gen.Target. Classes are laid out by package below
// the output directory: com/example/ModelUser.java.
func (*Target) FileName(u *gen.Unit) string {
	return path.Join(strings.ReplaceAll(u.Package, ".", "/"), u.Name+".java")
}

type (
	classData struct {
		Header    string
		Package   string
		Imports   []string
		Name      string
		Base      string
		Accessors []accessorData
	}
	accessorData struct {
		Type, Getter, Setter, Param string
		Read, Write, Column         string
	}
)

// Render implements gen.Target.
func (t *Target) Render(u *gen.Unit) ([]byte, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	data := classData{
		Header:  t.header,
		Package: u.Package,
		Name:    u.Name,
		Base:    u.Base.Name,
	}
	imports := make(map[string]struct{})
	if u.Base.Package != "" && u.Base.Package != u.Package {
		imports[u.Base.Package+"."+u.Base.Name] = struct{}{}
	}
	for _, a := range u.Accessors {
		typ, imp := javaType(a.Type)
		if imp != "" {
			imports[imp] = struct{}{}
		}
		data.Accessors = append(data.Accessors, accessorData{
			Type:   typ,
			Getter: a.Getter,
			Setter: a.Setter,
			Param:  a.Param,
			Read:   u.Base.ReadOp(a.Kind),
			Write:  u.Base.WriteOp(a.Kind),
			Column: a.Column,
		})
	}
	for imp := range imports {
		data.Imports = append(data.Imports, imp)
	}
	slices.Sort(data.Imports)
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "unit.tmpl", data); err != nil {
		return nil, fmt.Errorf("execute template for %s: %w", u.Name, err)
	}
	return buf.Bytes(), nil
}

// javaType returns the Java type of values of a semantic type and the
// class to import for it, if any.
func javaType(t gen.SemanticType) (typ, imp string) {
	switch t {
	case gen.Text:
		return "String", ""
	case gen.Date:
		return "Date", "java.util.Date"
	case gen.Time:
		return "Time", "java.sql.Time"
	case gen.Timestamp:
		return "Timestamp", "java.sql.Timestamp"
	case gen.Integer:
		return "Integer", ""
	case gen.Decimal:
		return "Double", ""
	default:
		return "Object", ""
	}
}

// quote returns s as a Java string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func validate(u *gen.Unit) error {
	if !isIdentifier(u.Name) {
		return fmt.Errorf("unit name %q is not a valid Java identifier", u.Name)
	}
	seen := make(map[string]string, len(u.Accessors))
	for _, a := range u.Accessors {
		if !isIdentifier(a.Getter) || !isIdentifier(a.Param) {
			return fmt.Errorf("column %q does not form a valid Java identifier", a.Column)
		}
		if prev, ok := seen[a.Getter]; ok {
			return fmt.Errorf("columns %q and %q both generate %s", prev, a.Column, a.Getter)
		}
		seen[a.Getter] = a.Column
	}
	return nil
}
