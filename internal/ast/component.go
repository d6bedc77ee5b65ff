package ast

import "cfparse/internal/source"

// Body is the body of a generic tag statement: pending until its end tag is
// found, then resolved.
type Body interface {
	bodyState()
}

// PendingBody marks a tag whose end tag has not been seen (yet).
type PendingBody struct{}

// ResolvedBody holds the statements between a tag and its end tag. An empty
// Statements slice is a tag without a body.
type ResolvedBody struct {
	Statements []Stmt
}

func (*PendingBody) bodyState()  {}
func (*ResolvedBody) bodyState() {}

// ComponentStmt is a generic tag such as <cflock> or the script `lock {}`.
type ComponentStmt struct {
	Base
	Name         string
	Attributes   []*Annotation
	RequiresBody bool
	Body         Body
}

func (*ComponentStmt) stmtNode() {}

// Pending reports whether the end tag is still missing.
func (c *ComponentStmt) Pending() bool {
	_, ok := c.Body.(*PendingBody)
	return ok
}

// Statements returns the resolved body, or nil while pending.
func (c *ComponentStmt) Statements() []Stmt {
	if rb, ok := c.Body.(*ResolvedBody); ok {
		return rb.Statements
	}
	return nil
}

// Resolve attaches the body found between the tag and its end tag and
// extends the node to cover the end tag. It is the only mutation of a node
// after construction and panics when called twice.
func (c *ComponentStmt) Resolve(stmts []Stmt, through source.Span, text string) {
	if !c.Pending() {
		panic("ast: ComponentStmt " + c.Name + " resolved twice")
	}
	if stmts == nil {
		stmts = []Stmt{}
	}
	c.Body = &ResolvedBody{Statements: stmts}
	c.span = c.span.Cover(through)
	c.text = text
}
