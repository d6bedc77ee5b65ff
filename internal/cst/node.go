// Package cst holds the concrete syntax tree shared by the script and markup
// grammars. Nodes mirror grammar productions; the lower package turns them
// into the AST.
package cst

import (
	"strings"

	"cfparse/internal/source"
	"cfparse/internal/token"
)

// Flag carries boolean facts about a node.
type Flag uint8

const (
	// FlagSelfClosing marks a markup tag written as `<cfX/>`.
	FlagSelfClosing Flag = 1 << iota
	// FlagSafe marks `?.` access.
	FlagSafe
	// FlagNamed marks a named argument.
	FlagNamed
	// FlagVar marks a `var` declaration.
	FlagVar
	// FlagOrdered marks a `[k: v]` struct literal.
	FlagOrdered
	// FlagCallForm marks a script component written as `cfNAME(...)`.
	FlagCallForm
	// FlagClosed marks a structural markup tag whose end tag was found.
	FlagClosed
)

// Node represents a node in the concrete syntax tree.
type Node struct {
	Kind     Kind
	Span     source.Span
	Children []*Node
	// Tok is the leaf token, or the keyword/operator token of an interior node.
	Tok *token.Token
	// Value is a normalized spelling: operator, tag name, modifier, FQN text.
	Value string
	Flags Flag
	// Doc is the doc comment attached to a declaration.
	Doc   *token.Trivia
	Error string
}

// New creates an interior node.
func New(kind Kind, span source.Span) *Node {
	return &Node{Kind: kind, Span: span}
}

// NewLeaf creates a node wrapping a single token.
func NewLeaf(kind Kind, tok token.Token) *Node {
	return &Node{Kind: kind, Span: tok.Span, Tok: &tok}
}

// NewError creates an error node at span.
func NewError(msg string, span source.Span) *Node {
	return &Node{Kind: KindError, Span: span, Error: msg}
}

// AddChild appends a child; nil children are skipped.
func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) Has(f Flag) bool { return n.Flags&f != 0 }

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// FirstOfKind returns the first child of the given kind.
func (n *Node) FirstOfKind(kind Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// OfKind returns every child of the given kind, in order.
func (n *Node) OfKind(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the leaf token text; it is empty for a nil node.
func (n *Node) Text() string {
	if n != nil && n.Tok != nil {
		return n.Tok.Text
	}
	return ""
}

// String dumps the subtree, one node per line.
func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if n.Value != "" {
		b.WriteString(" " + n.Value)
	} else if n.Tok != nil {
		b.WriteString(" " + n.Tok.Text)
	}
	if n.Error != "" {
		b.WriteString(" ERROR: " + n.Error)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.dump(b, depth+1)
	}
}
