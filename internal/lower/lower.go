// Package lower turns the concrete syntax tree of either dialect into the
// unified AST.
//
// Lowering never stops on a recoverable problem: it reports an issue and
// substitutes a placeholder. The only fatal condition is a construct that has
// no AST mapping; it surfaces as an error wrapping ErrUnimplemented.
package lower

import (
	"errors"
	"fmt"
	"sync"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/source"
	"cfparse/internal/tags"
)

// ErrUnimplemented is wrapped by every fatal lowering error.
var ErrUnimplemented = errors.New("construct has no lowering")

// UnimplementedError names the construct that could not be lowered.
type UnimplementedError struct {
	What string
	Span source.Span
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s: %s at [%d, %d)", ErrUnimplemented, e.What, e.Span.Start, e.Span.End)
}

func (e *UnimplementedError) Unwrap() error { return ErrUnimplemented }

// Options configures one lowering call.
type Options struct {
	// Registry supplies tag body metadata; nil means the built-in table.
	Registry tags.Registry
	Reporter diag.Reporter
}

var builtinRegistry = sync.OnceValue(func() tags.Registry { return tags.Builtin() })

// lowerer holds the context of one lowering call. Nested re-parses get a
// fresh lowerer of their own.
type lowerer struct {
	file *source.File
	reg  tags.Registry
	rep  diag.Reporter
}

func newLowerer(file *source.File, opts Options) *lowerer {
	reg := opts.Registry
	if reg == nil {
		reg = builtinRegistry()
	}
	return &lowerer{file: file, reg: reg, rep: opts.Reporter}
}

// Script lowers a script-dialect unit. The root is a Script, or a ClassDecl
// when the unit declares a component.
func Script(file *source.File, root *cst.Node, opts Options) (res ast.Root, err error) {
	l := newLowerer(file, opts)
	defer recoverFatal(&err)
	return l.scriptRoot(root), nil
}

// Expression lowers a single script expression.
func Expression(file *source.File, root *cst.Node, opts Options) (res ast.Expr, err error) {
	l := newLowerer(file, opts)
	defer recoverFatal(&err)
	return l.expr(root), nil
}

// Statement lowers a single script statement. A block lowers to a Script
// holding its statements.
func Statement(file *source.File, root *cst.Node, opts Options) (res ast.Node, err error) {
	l := newLowerer(file, opts)
	defer recoverFatal(&err)
	stmts := l.stmts(nil, root)
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return &ast.Script{Base: l.base(root.Span), Statements: stmts}, nil
}

// Template lowers a markup-dialect document. The root is a Template, or a
// ClassDecl for a tag-based component.
func Template(file *source.File, root *cst.Node, opts Options) (res ast.Root, err error) {
	l := newLowerer(file, opts)
	defer recoverFatal(&err)
	return l.templateRoot(root), nil
}

func recoverFatal(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ue, ok := r.(*UnimplementedError); ok {
		*err = ue
		return
	}
	panic(r)
}

// unimplemented aborts the current lowering call.
func (l *lowerer) unimplemented(what string, sp source.Span) {
	panic(&UnimplementedError{What: what, Span: sp})
}

func (l *lowerer) base(sp source.Span) ast.Base {
	return ast.At(sp, l.file.Text(sp))
}

func (l *lowerer) report(code diag.Code, sp source.Span, msg string) {
	if l.rep != nil {
		diag.ReportError(l.rep, code, sp, msg).Emit()
	}
}

func (l *lowerer) span(start, end uint32) source.Span {
	return source.Span{File: l.file.ID, Start: start, End: end}
}

func (l *lowerer) null(at source.Span) *ast.NullLit {
	return &ast.NullLit{Base: ast.Synthetic(at)}
}

func (l *lowerer) emptyString(at source.Span) *ast.StringLit {
	return &ast.StringLit{Base: ast.Synthetic(at)}
}
