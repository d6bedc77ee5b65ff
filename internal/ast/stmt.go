package ast

type ExprStmt struct {
	Base
	X Expr
}

// IfStmt: Else is nil when there is no else branch; an else-if chain is an
// Else holding a single IfStmt.
type IfStmt struct {
	Base
	Cond Expr
	Then []Stmt
	Else []Stmt
}

type WhileStmt struct {
	Base
	Cond Expr
	Body []Stmt
}

type DoWhileStmt struct {
	Base
	Body []Stmt
	Cond Expr
}

// ForInStmt is `for ([var] x in collection)`.
type ForInStmt struct {
	Base
	Var        Expr
	HasVar     bool
	Collection Expr
	Body       []Stmt
}

// ForIndexStmt is `for (init; cond; step)`; any clause may be nil.
type ForIndexStmt struct {
	Base
	Init Expr
	Cond Expr
	Step Expr
	Body []Stmt
}

type SwitchStmt struct {
	Base
	Subject Expr
	Cases   []*SwitchCase
}

// SwitchCase has a nil Value for the default case.
type SwitchCase struct {
	Base
	Value     Expr
	Delimiter Expr
	Body      []Stmt
}

type TryStmt struct {
	Base
	Body    []Stmt
	Catches []*CatchClause
	Finally []Stmt
}

// CatchClause matches one or more exception types.
type CatchClause struct {
	Base
	Types []Expr
	Var   *Identifier
	Body  []Stmt
}

// ThrowStmt: X is the thrown object; the rest come from tag attributes or
// named arguments and may be nil.
type ThrowStmt struct {
	Base
	X            Expr
	Type         Expr
	Message      Expr
	Detail       Expr
	ErrorCode    Expr
	ExtendedInfo Expr
}

type RethrowStmt struct {
	Base
}

type AssertStmt struct {
	Base
	X Expr
}

type BreakStmt struct {
	Base
	Label string
}

type ContinueStmt struct {
	Base
	Label string
}

type ReturnStmt struct {
	Base
	X Expr // may be nil
}

type ImportStmt struct {
	Base
	Prefix string
	Name   Expr // FQN or StringLit
	Alias  string
}

// BufferOutputStmt writes template text.
type BufferOutputStmt struct {
	Base
	X Expr
}

// ScriptIslandStmt wraps the statements of an embedded script block.
type ScriptIslandStmt struct {
	Base
	Body []Stmt
}

// IncludeStmt is the script `include` statement.
type IncludeStmt struct {
	Base
	Template Expr
}

func (*ExprStmt) stmtNode()         {}
func (*IfStmt) stmtNode()           {}
func (*WhileStmt) stmtNode()        {}
func (*DoWhileStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()        {}
func (*ForIndexStmt) stmtNode()     {}
func (*SwitchStmt) stmtNode()       {}
func (*SwitchCase) stmtNode()       {}
func (*TryStmt) stmtNode()          {}
func (*CatchClause) stmtNode()      {}
func (*ThrowStmt) stmtNode()        {}
func (*RethrowStmt) stmtNode()      {}
func (*AssertStmt) stmtNode()       {}
func (*BreakStmt) stmtNode()        {}
func (*ContinueStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()       {}
func (*ImportStmt) stmtNode()       {}
func (*BufferOutputStmt) stmtNode() {}
func (*ScriptIslandStmt) stmtNode() {}
func (*IncludeStmt) stmtNode()      {}
