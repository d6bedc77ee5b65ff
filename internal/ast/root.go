package ast

// Script is the root of a script-dialect unit.
type Script struct {
	Base
	Statements []Stmt
}

// Template is the root of a markup-dialect document.
type Template struct {
	Base
	Statements []Stmt
}

// ClassDecl is a component or interface in either dialect.
type ClassDecl struct {
	Base
	Interface     bool
	Imports       []*ImportStmt
	Body          []Stmt
	Annotations   []*Annotation
	Documentation *Documentation
	Properties    []*PropertyDecl
}

func (*Script) rootNode()    {}
func (*Template) rootNode()  {}
func (*ClassDecl) rootNode() {}

func (*ClassDecl) stmtNode() {}
func (*ClassDecl) declNode() {}
