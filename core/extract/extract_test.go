// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"codeberg.org/tscat/tscat/core/ts"
)

const i18nSrc = `package i18n

type MsgKey struct {
	Context string
	Source  string
	Comment string
}

func Tr(ctx any, context, source string, kv ...any) string                          { return source }
func TrC(ctx any, context, source, comment string, kv ...any) string                { return source }
func TrN(ctx any, context, source string, n int, kv ...any) string                  { return source }
func TrNC(ctx any, context, source, comment string, n int, kv ...any) string        { return source }
func NewUserError(ctx any, context, source string, kv ...any) error                 { return nil }
`

const appSrc = `package app

import "example.com/i18n"

const ctxName = "Main"

var dyn = "x"

var keys = []i18n.MsgKey{
	{Context: "Main", Source: "Keyed"},
	{"Main", "Positional", "note"},
}

func f(n int) {
	i18n.Tr(nil, ctxName, "Hello")
	i18n.Tr(nil, "Main", "Hel"+"lo")
	i18n.TrC(nil, "Main", "Open", "menu")
	i18n.TrN(nil, "Main", "%n file(s)", n)
	i18n.TrNC(nil, "Other", "%n item(s)", "cart", n)
	_ = i18n.NewUserError(nil, "Errors", "Bad {{.X}}", "X", n)
	i18n.Tr(nil, "Main", dyn)
}
`

const aliasSrc = `package app

import t "example.com/i18n"

func g() error { return t.NewUserError(nil, "Errors", "Bad {{.X}}") }
`

const root = "/src"

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }

// typeCheck builds a package the way go/packages would load it with
// LoadAllSyntax.
func typeCheck(t *testing.T, fset *token.FileSet, path string, sources map[string]string, deps ...*packages.Package) *packages.Package {
	t.Helper()

	var files []*ast.File

	for name, src := range sources {
		f, err := parser.ParseFile(fset, filepath.Join(root, name), src, 0)
		require.NoError(t, err)

		files = append(files, f)
	}

	imports := make(map[string]*packages.Package, len(deps))
	for _, d := range deps {
		imports[d.PkgPath] = d
	}

	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}

	conf := types.Config{Importer: importerFunc(func(p string) (*types.Package, error) {
		return imports[p].Types, nil
	})}

	pkg, err := conf.Check(path, fset, files, info)
	require.NoError(t, err)

	return &packages.Package{
		ID:        path,
		Name:      pkg.Name(),
		PkgPath:   path,
		Fset:      fset,
		Syntax:    files,
		Types:     pkg,
		TypesInfo: info,
		Imports:   imports,
	}
}

func TestFromPackages(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	i18nPkg := typeCheck(t, fset, "example.com/i18n", map[string]string{"i18n/i18n.go": i18nSrc})
	appPkg := typeCheck(t, fset, "example.com/app", map[string]string{
		"app/app.go":   appSrc,
		"app/alias.go": aliasSrc,
	}, i18nPkg)

	got := FromPackages([]*packages.Package{appPkg, i18nPkg}, root)

	loc := func(file string, line int) ts.Location {
		return ts.Location{Filename: file, Line: line}
	}

	want := []*Message{
		{Key: ts.Key{Context: "Errors", Source: "Bad {{.X}}"}, Locations: []ts.Location{loc("app/alias.go", 5), loc("app/app.go", 20)}},
		{Key: ts.Key{Context: "Main", Source: "%n file(s)"}, Numerus: true, Locations: []ts.Location{loc("app/app.go", 18)}},
		{Key: ts.Key{Context: "Main", Source: "Hello"}, Locations: []ts.Location{loc("app/app.go", 15), loc("app/app.go", 16)}},
		{Key: ts.Key{Context: "Main", Source: "Keyed"}, Locations: []ts.Location{loc("app/app.go", 10)}},
		{Key: ts.Key{Context: "Main", Source: "Open", Comment: "menu"}, Locations: []ts.Location{loc("app/app.go", 17)}},
		{Key: ts.Key{Context: "Main", Source: "Positional", Comment: "note"}, Locations: []ts.Location{loc("app/app.go", 11)}},
		{Key: ts.Key{Context: "Other", Source: "%n item(s)", Comment: "cart"}, Numerus: true, Locations: []ts.Location{loc("app/app.go", 19)}},
	}

	assert.Equal(t, want, got)
}

func TestFromPackages_NoI18nPackage(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()
	pkg := typeCheck(t, fset, "example.com/other", map[string]string{"other/other.go": `package other

type T struct{}

func (T) Tr(ctx any, context, source string) string { return source }

func f() { T{}.Tr(nil, "Main", "Hello") }
`})

	assert.Empty(t, FromPackages([]*packages.Package{pkg}, root))
}
