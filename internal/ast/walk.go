package ast

import "fmt"

// Inspect walks the tree depth-first in source order. If f returns false the
// children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Children lists the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(xs ...Node) {
		for _, x := range xs {
			if !isNil(x) {
				out = append(out, x)
			}
		}
	}
	switch n := n.(type) {
	// roots
	case *Script:
		addStmts(add, n.Statements)
	case *Template:
		addStmts(add, n.Statements)
	case *ClassDecl:
		addDocs(add, n.Documentation)
		addAnnos(add, n.Annotations)
		for _, imp := range n.Imports {
			add(imp)
		}
		for _, p := range n.Properties {
			add(p)
		}
		addStmts(add, n.Body)

	// statements
	case *ExprStmt:
		add(n.X)
	case *IfStmt:
		add(n.Cond)
		addStmts(add, n.Then)
		addStmts(add, n.Else)
	case *WhileStmt:
		add(n.Cond)
		addStmts(add, n.Body)
	case *DoWhileStmt:
		addStmts(add, n.Body)
		add(n.Cond)
	case *ForInStmt:
		add(n.Var, n.Collection)
		addStmts(add, n.Body)
	case *ForIndexStmt:
		add(n.Init, n.Cond, n.Step)
		addStmts(add, n.Body)
	case *SwitchStmt:
		add(n.Subject)
		for _, c := range n.Cases {
			add(c)
		}
	case *SwitchCase:
		add(n.Value, n.Delimiter)
		addStmts(add, n.Body)
	case *TryStmt:
		addStmts(add, n.Body)
		for _, c := range n.Catches {
			add(c)
		}
		addStmts(add, n.Finally)
	case *CatchClause:
		for _, t := range n.Types {
			add(t)
		}
		if n.Var != nil {
			add(n.Var)
		}
		addStmts(add, n.Body)
	case *ThrowStmt:
		add(n.X, n.Type, n.Message, n.Detail, n.ErrorCode, n.ExtendedInfo)
	case *RethrowStmt, *BreakStmt, *ContinueStmt:
	case *AssertStmt:
		add(n.X)
	case *ReturnStmt:
		add(n.X)
	case *ImportStmt:
		add(n.Name)
	case *BufferOutputStmt:
		add(n.X)
	case *ScriptIslandStmt:
		addStmts(add, n.Body)
	case *IncludeStmt:
		add(n.Template)
	case *ComponentStmt:
		addAnnos(add, n.Attributes)
		addStmts(add, n.Statements())

	// declarations
	case *FunctionDecl:
		addDocs(add, n.Documentation)
		addAnnos(add, n.Annotations)
		if n.ReturnType != nil {
			add(n.ReturnType)
		}
		for _, a := range n.Args {
			add(a)
		}
		addStmts(add, n.Body)
	case *ArgumentDecl:
		add(n.Default)
		addAnnos(add, n.Annotations)
		for _, d := range n.Documentation {
			add(d)
		}
	case *PropertyDecl:
		addDocs(add, n.Documentation)
		addAnnos(add, n.Annotations)
	case *Annotation:
		if n.Key != nil {
			add(n.Key)
		}
		add(n.Value)
	case *DocAnnotation:
		if n.Key != nil {
			add(n.Key)
		}
		add(n.Value)
	case *Documentation:
		for _, d := range n.Annotations {
			add(d)
		}
	case *ReturnType:

	// expressions
	case *Identifier, *ScopeRef, *StringLit, *IntegerLit, *DecimalLit, *BooleanLit, *NullLit, *FQN:
	case *ArrayLit:
		addExprs(add, n.Items)
	case *StructLit:
		for _, e := range n.Entries {
			add(e.Key, e.Value)
		}
	case *StringInterpolation:
		addExprs(add, n.Parts)
	case *StringConcat:
		addExprs(add, n.Parts)
	case *BinaryOp:
		add(n.Left, n.Right)
	case *ComparisonOp:
		add(n.Left, n.Right)
	case *UnaryOp:
		add(n.X)
	case *TernaryOp:
		add(n.Cond, n.Then, n.Else)
	case *Assignment:
		add(n.Left, n.Right)
	case *Parenthesis:
		add(n.X)
	case *DotAccess:
		add(n.Context, n.Access)
	case *ArrayAccess:
		add(n.Context, n.Index)
	case *MethodInvocation:
		add(n.Obj)
		if n.Name != nil {
			add(n.Name)
		}
		addArgs(add, n.Args)
	case *FunctionInvocation:
		addArgs(add, n.Args)
	case *ExpressionInvocation:
		add(n.Callee)
		addArgs(add, n.Args)
	case *NewOp:
		add(n.Class)
		addArgs(add, n.Args)
	case *Argument:
		add(n.Name, n.Value)
	case *Closure:
		for _, a := range n.Args {
			add(a)
		}
		addAnnos(add, n.Annotations)
		addStmts(add, n.Body)
	case *Lambda:
		for _, a := range n.Args {
			add(a)
		}
		addAnnos(add, n.Annotations)
		addStmts(add, n.Body)
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
	return out
}

func addStmts(add func(...Node), xs []Stmt) {
	for _, x := range xs {
		add(x)
	}
}

func addExprs(add func(...Node), xs []Expr) {
	for _, x := range xs {
		add(x)
	}
}

func addAnnos(add func(...Node), xs []*Annotation) {
	for _, x := range xs {
		add(x)
	}
}

func addArgs(add func(...Node), xs []*Argument) {
	for _, x := range xs {
		add(x)
	}
}

func addDocs(add func(...Node), d *Documentation) {
	if d != nil {
		add(d)
	}
}

// isNil catches both a nil interface and a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *FQN:
		return v == nil
	case *Documentation:
		return v == nil
	}
	return false
}
