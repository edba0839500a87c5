// Package golang renders generated units as Go source. A unit becomes a
// struct embedding the base entity, with one exported getter and setter
// method per column delegating to the keyed operations of the base.
package golang

import (
	"bytes"
	"fmt"
	"go/token"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/syssam/modelgen/compiler/gen"
)

// Name of the target.
const Name = "go"

// RecordPkg is the import path of the default base entity.
const RecordPkg = "github.com/syssam/modelgen/record"

// DefaultBase references record.Model.
var DefaultBase = gen.BaseRef{
	Package: RecordPkg,
	Name:    "Model",
	Read:    "get",
	Write:   "set",
}

// Target renders Go source with jennifer.
type Target struct {
	base   gen.BaseRef
	header string
}

func init() { gen.RegisterTarget(New()) }

// New returns a Go target extending DefaultBase.
func New() *Target { return &Target{base: DefaultBase, header: gen.DefaultHeader} }

// WithBase returns a copy of the target extending a custom base entity.
// The base must offer the same keyed operations as record.Model.
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

// FileName implements gen.Target.
func (*Target) FileName(u *gen.Unit) string { return gen.Snake(u.Name) + ".go" }

// Render implements gen.Target.
func (t *Target) Render(u *gen.Unit) ([]byte, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	f := t.newFile(u)
	f.Commentf("%s holds the typed column accessors of %s.", u.Name, u.Entity)
	f.Type().Id(u.Name).Struct(jen.Qual(u.Base.Package, u.Base.Name))
	for _, a := range u.Accessors {
		genGetter(f, u, a)
		genSetter(f, u, a)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", u.Name, err)
	}
	return buf.Bytes(), nil
}

// Format implements gen.Formatter.
func (*Target) Format(path string, src []byte) ([]byte, error) {
	return imports.Process(path, src, nil)
}

// newFile creates a new Jennifer file with the header comment.
func (t *Target) newFile(u *gen.Unit) *jen.File {
	var f *jen.File
	if u.Package != "" {
		f = jen.NewFilePathName(u.Package, u.PkgName)
	} else {
		f = jen.NewFile(u.PkgName)
	}
	f.HeaderComment(t.header)
	return f
}

// genGetter generates:
//
//	func (m *ModelUser) GetId() int { return m.Model.GetInteger("id") }
func genGetter(f *jen.File, u *gen.Unit, a *gen.Accessor) {
	name := gen.Exported(a.Getter)
	f.Commentf("%s returns the value of the %q column.", name, a.Column)
	f.Func().Params(jen.Id("m").Op("*").Id(u.Name)).Id(name).Params().Add(goType(a.Type)).Block(
		jen.Return(jen.Id("m").Dot(u.Base.Name).Dot(gen.Exported(u.Base.ReadOp(a.Kind))).Call(jen.Lit(a.Column))),
	)
}

// genSetter generates:
//
//	func (m *ModelUser) SetId(Id int) { m.Model.SetInteger("id", Id) }
func genSetter(f *jen.File, u *gen.Unit, a *gen.Accessor) {
	name := gen.Exported(a.Setter)
	f.Commentf("%s sets the value of the %q column.", name, a.Column)
	f.Func().Params(jen.Id("m").Op("*").Id(u.Name)).Id(name).Params(jen.Id(a.Param).Add(goType(a.Type))).Block(
		jen.Id("m").Dot(u.Base.Name).Dot(gen.Exported(u.Base.WriteOp(a.Kind))).Call(jen.Lit(a.Column), jen.Id(a.Param)),
	)
}

// goType returns the Go type of values of a semantic type.
func goType(t gen.SemanticType) jen.Code {
	switch t {
	case gen.Text:
		return jen.String()
	case gen.Date, gen.Time, gen.Timestamp:
		return jen.Qual("time", "Time")
	case gen.Integer:
		return jen.Int()
	case gen.Decimal:
		return jen.Float64()
	default:
		return jen.Any()
	}
}

// validate reports columns whose accessor names are not valid Go
// identifiers, or that collide with the accessors of another column.
func validate(u *gen.Unit) error {
	if !token.IsIdentifier(u.Name) {
		return fmt.Errorf("unit name %q is not a valid Go identifier", u.Name)
	}
	if !token.IsIdentifier(u.PkgName) {
		return fmt.Errorf("entity %s has no valid Go package name (got %q); set its package or dir", u.Entity, u.PkgName)
	}
	seen := make(map[string]string, len(u.Accessors))
	for _, a := range u.Accessors {
		getter := gen.Exported(a.Getter)
		if !token.IsIdentifier(getter) || !token.IsIdentifier(a.Param) {
			return fmt.Errorf("column %q does not form a valid Go identifier", a.Column)
		}
		if prev, ok := seen[getter]; ok {
			return fmt.Errorf("columns %q and %q both generate %s", prev, a.Column, getter)
		}
		seen[getter] = a.Column
	}
	return nil
}
