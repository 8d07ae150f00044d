// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package extract finds translatable messages in Go packages and merges them
// into Qt Linguist catalogs, the way lupdate does for C++ sources.
//
// Recognised forms, where i18n is the package defining MsgKey:
//
//	i18n.Tr(ctx, "Context", "Source", ...)
//	i18n.TrC(ctx, "Context", "Source", "comment", ...)
//	i18n.TrN(ctx, "Context", "%n item(s)", n, ...)
//	i18n.TrNC(ctx, "Context", "%n item(s)", "comment", n, ...)
//	i18n.NewUserError(ctx, "Context", "Source", ...)
//	i18n.MsgKey{Context: "Context", Source: "Source", Comment: "comment"}
//
// Arguments must be constant strings; other calls are skipped.
package extract

import (
	"cmp"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/tscat/tscat/core/ts"
)

// Message is a message found in the sources.
type Message struct {
	Key       ts.Key
	Numerus   bool
	Locations []ts.Location
}

// call describes where a translation function takes its arguments.
type call struct {
	context, source, comment int // argument indexes; comment is -1 if absent
	numerus                  bool
}

var calls = map[string]call{
	"Tr":           {context: 1, source: 2, comment: -1},
	"TrC":          {context: 1, source: 2, comment: 3},
	"TrN":          {context: 1, source: 2, comment: -1, numerus: true},
	"TrNC":         {context: 1, source: 2, comment: 3, numerus: true},
	"NewUserError": {context: 1, source: 2, comment: -1},
}

// extractor holds the shared state and context for AST analysis within a package.
type extractor struct {
	found    map[ts.Key]*Message
	root     string
	fset     *token.FileSet
	info     *types.Info
	i18nPkgs map[string]struct{}
}

// FromPackages returns the messages used in pkgs sorted by context and
// source. Locations are made relative to root.
func FromPackages(pkgs []*packages.Package, root string) []*Message {
	found := make(map[ts.Key]*Message)
	i18nPkgs := findI18nPkgPaths(pkgs)

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{
			found:    found,
			root:     root,
			fset:     p.Fset,
			info:     p.TypesInfo,
			i18nPkgs: i18nPkgs,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.handleCallExpr(x)
				case *ast.CompositeLit:
					e.handleCompositeLit(x)
				}

				return true
			})
		}
	}

	out := make([]*Message, 0, len(found))
	for _, m := range found {
		slices.SortFunc(m.Locations, func(a, b ts.Location) int {
			return cmp.Or(cmp.Compare(a.Filename, b.Filename), cmp.Compare(a.Line, b.Line))
		})
		m.Locations = slices.Compact(m.Locations)

		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b *Message) int {
		return cmp.Or(
			cmp.Compare(a.Key.Context, b.Key.Context),
			cmp.Compare(a.Key.Source, b.Key.Source),
			cmp.Compare(a.Key.Comment, b.Key.Comment),
		)
	})

	log.Debug().
		Str("sys", "extract").
		Int("packages", len(pkgs)).
		Int("messages", len(out)).
		Msg("Extracted messages")

	return out
}

// findI18nPkgPaths returns the paths of the packages named i18n that define
// a MsgKey struct with Context and Source fields, so that calls are matched
// regardless of how the package is imported or aliased.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.Name != "i18n" || p.Types == nil {
			return
		}

		tn, ok := p.Types.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			return
		}

		st, ok := tn.Type().Underlying().(*types.Struct)
		if ok && hasStringField(st, "Context") && hasStringField(st, "Source") {
			out[p.PkgPath] = struct{}{}
		}
	})

	return out
}

func hasStringField(st *types.Struct, name string) bool {
	for f := range st.Fields() {
		if f.Name() != name {
			continue
		}

		basic, ok := f.Type().Underlying().(*types.Basic)

		return ok && basic.Kind() == types.String
	}

	return false
}

// constString evaluates expr to a constant string if possible using types.Info.
// Handles string literals, const identifiers, and constant expressions like "a" + "b".
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKey reports whether t is the named type MsgKey of an i18n package.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	_, ok = e.i18nPkgs[obj.Pkg().Path()]

	return ok && obj.Name() == "MsgKey"
}

// handleCompositeLit records MsgKey literals, keyed or positional.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil || !e.isMsgKey(tv.Type) {
		return
	}

	st, ok := tv.Type.Underlying().(*types.Struct)
	if !ok {
		return
	}

	fields := make(map[string]ast.Expr, len(x.Elts))

	for i, elt := range x.Elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			if id, ok := kv.Key.(*ast.Ident); ok {
				fields[id.Name] = kv.Value
			}

			continue
		}

		if i < st.NumFields() {
			fields[st.Field(i).Name()] = elt
		}
	}

	ctxExpr, srcExpr := fields["Context"], fields["Source"]
	if ctxExpr == nil || srcExpr == nil {
		return
	}

	var key ts.Key

	key.Context, ok = constString(e.info, ctxExpr)
	if !ok {
		return
	}

	if key.Source, ok = constString(e.info, srcExpr); !ok {
		return
	}

	if expr := fields["Comment"]; expr != nil {
		if key.Comment, ok = constString(e.info, expr); !ok {
			return
		}
	}

	e.add(srcExpr.Pos(), key, false)
}

// handleCallExpr records calls to the translation functions.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	sel, ok := x.Fun.(*ast.SelectorExpr)
	if !ok {
		return
	}

	fn, ok := e.info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return
	}

	if _, ok := e.i18nPkgs[fn.Pkg().Path()]; !ok {
		return
	}

	c, ok := calls[fn.Name()]
	if !ok || len(x.Args) <= max(c.source, c.comment) {
		return
	}

	var key ts.Key

	if key.Context, ok = constString(e.info, x.Args[c.context]); !ok {
		return
	}

	if key.Source, ok = constString(e.info, x.Args[c.source]); !ok {
		return
	}

	if c.comment >= 0 {
		if key.Comment, ok = constString(e.info, x.Args[c.comment]); !ok {
			return
		}
	}

	e.add(x.Args[c.source].Pos(), key, c.numerus)
}

// add records a use of key, normalising the file path relative to the root.
func (e *extractor) add(pos token.Pos, key ts.Key, numerus bool) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.root, file); err == nil {
		file = rel
	}

	m, ok := e.found[key]
	if !ok {
		m = &Message{Key: key}
		e.found[key] = m
	}

	m.Numerus = m.Numerus || numerus
	m.Locations = append(m.Locations, ts.Location{Filename: filepath.ToSlash(file), Line: p.Line})
}
