package load

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/syssam/modelgen"
)

// Directive marks a type declaration as a source entity:
//
//	//modelgen:model table=users conn=../db.properties
//	type User struct{}
//
// Both options are optional. A relative conn path is resolved against the
// directory of the file holding the declaration.
const Directive = "modelgen:model"

// Discover loads the Go packages matching the patterns (relative to dir)
// and returns every struct type carrying the Directive, sorted by package
// and name. Directives attached to non-struct types are ignored.
func Discover(ctx context.Context, dir string, patterns ...string) ([]*Entity, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("modelgen/load: loading packages: %w", err)
	}
	var (
		entities []*Entity
		errs     []error
	)
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		for _, f := range pkg.Syntax {
			found, err := fileEntities(pkg, f)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			entities = append(entities, found...)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("modelgen/load: %w", err)
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Package != entities[j].Package {
			return entities[i].Package < entities[j].Package
		}
		return entities[i].Name < entities[j].Name
	})
	return entities, nil
}

func fileEntities(pkg *packages.Package, f *ast.File) ([]*Entity, error) {
	var entities []*Entity
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			// A lone spec carries its comment on the declaration.
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			opts, ok := directive(doc)
			if !ok {
				continue
			}
			if _, isStruct := ts.Type.(*ast.StructType); !isStruct {
				continue
			}
			pos := pkg.Fset.Position(ts.Pos())
			e := &Entity{
				Name:    ts.Name.Name,
				Package: pkg.PkgPath,
				PkgName: pkg.Name,
				Dir:     filepath.Dir(pos.Filename),
				Pos:     pos.String(),
			}
			if err := e.applyOptions(opts); err != nil {
				return nil, err
			}
			entities = append(entities, e)
		}
	}
	return entities, nil
}

// directive returns the option fields of the Directive line in doc.
func directive(doc *ast.CommentGroup) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	for _, c := range doc.List {
		text := strings.TrimPrefix(c.Text, "//")
		if text == Directive || strings.HasPrefix(text, Directive+" ") {
			return strings.Fields(strings.TrimPrefix(text, Directive)), true
		}
	}
	return nil, false
}

func (e *Entity) applyOptions(opts []string) error {
	for _, opt := range opts {
		k, v, ok := strings.Cut(opt, "=")
		if !ok || v == "" {
			return &modelgen.ConfigError{Entity: e.Name, Key: opt, Message: "expect key=value in " + Directive + " directive"}
		}
		switch k {
		case "table":
			e.Table = v
		case "conn":
			if !filepath.IsAbs(v) {
				v = filepath.Join(e.Dir, v)
			}
			e.Connection = filepath.Clean(v)
		default:
			return &modelgen.ConfigError{Entity: e.Name, Key: k, Message: "unknown " + Directive + " option"}
		}
	}
	return nil
}
