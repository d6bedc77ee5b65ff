// Package ast is the unified syntax tree produced by both dialects.
//
// Node families are sealed: Stmt, Expr, Decl and Root can only be implemented
// inside this package, so a type switch over a family is exhaustive.
package ast

import (
	"cfparse/internal/source"
)

// Node is any syntax tree node.
type Node interface {
	Span() source.Span
	// SourceText is exactly the input covered by Span.
	SourceText() string
	node()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Decl is a declaration or metadata node.
type Decl interface {
	Node
	declNode()
}

// Root is a value returned by a whole-unit parse.
type Root interface {
	Node
	rootNode()
}

// Base carries the position and source text shared by every node.
type Base struct {
	span source.Span
	text string
}

// At builds a Base. text must be the file content covered by span.
func At(span source.Span, text string) Base {
	return Base{span: span, text: text}
}

// Synthetic builds a Base for a node that has no source of its own, such as
// an implicit break or a default catch type; it is a zero-width span.
func Synthetic(at source.Span) Base {
	return Base{span: at.StartPoint()}
}

func (b *Base) Span() source.Span  { return b.span }
func (b *Base) SourceText() string { return b.text }
func (*Base) node()                {}
