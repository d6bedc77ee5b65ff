package lower

import (
	"strings"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
)

// scriptRoot lowers a Script node: imports, an optional component
// declaration, then free statements.
func (l *lowerer) scriptRoot(n *cst.Node) ast.Root {
	var imports []*ast.ImportStmt
	var class *ast.ClassDecl
	var rest []ast.Stmt
	for _, c := range n.Children {
		switch {
		case c.Kind == cst.KindImport && class == nil:
			imports = append(imports, l.importStmt(c))
		case c.Kind == cst.KindComponentDecl && class == nil:
			class = l.classDecl(c)
		default:
			rest = l.stmts(rest, c)
		}
	}
	if class == nil {
		stmts := make([]ast.Stmt, 0, len(imports)+len(rest))
		for _, imp := range imports {
			stmts = append(stmts, imp)
		}
		return &ast.Script{Base: l.base(n.Span), Statements: append(stmts, rest...)}
	}
	class.Base = l.base(n.Span)
	class.Imports = imports
	class.Body = append(class.Body, rest...)
	return class
}

// block lowers the statements of a Block, or of any single statement used
// as a body. The result is never nil.
func (l *lowerer) block(n *cst.Node) []ast.Stmt {
	out := []ast.Stmt{}
	if n == nil {
		return out
	}
	return l.stmts(out, n)
}

// stmts appends the lowering of n to out. Blocks are flattened into the
// surrounding list.
func (l *lowerer) stmts(out []ast.Stmt, n *cst.Node) []ast.Stmt {
	switch n.Kind {
	case cst.KindBlock:
		for _, c := range n.Children {
			out = l.stmts(out, c)
		}
		return out
	case cst.KindEmpty, cst.KindError:
		// errors were reported by the parser
		return out
	}
	return append(out, l.stmt(n))
}

func (l *lowerer) stmt(n *cst.Node) ast.Stmt {
	switch n.Kind {
	case cst.KindExprStmt:
		return &ast.ExprStmt{Base: l.base(n.Span), X: l.expr(n.Child(0))}
	case cst.KindVarDecl:
		// `var x;` declares without assigning
		return &ast.ExprStmt{Base: l.base(n.Span), X: l.expr(n.Child(0))}
	case cst.KindIf:
		return l.ifStmt(n)
	case cst.KindWhile:
		return &ast.WhileStmt{Base: l.base(n.Span), Cond: l.expr(n.Child(0)), Body: l.block(n.Child(1))}
	case cst.KindDoWhile:
		st := &ast.DoWhileStmt{Base: l.base(n.Span), Body: l.block(n.Child(0))}
		if cond := n.Child(1); cond != nil {
			st.Cond = l.expr(cond)
		} else {
			st.Cond = l.null(n.Span.EndPoint())
		}
		return st
	case cst.KindForIn:
		return &ast.ForInStmt{
			Base:       l.base(n.Span),
			Var:        l.expr(n.Child(0)),
			HasVar:     n.Has(cst.FlagVar),
			Collection: l.expr(n.Child(1)),
			Body:       l.block(n.Child(2)),
		}
	case cst.KindForIndex:
		return &ast.ForIndexStmt{
			Base: l.base(n.Span),
			Init: l.optExpr(n.Child(0)),
			Cond: l.optExpr(n.Child(1)),
			Step: l.optExpr(n.Child(2)),
			Body: l.block(n.Child(3)),
		}
	case cst.KindSwitch:
		return l.switchStmt(n)
	case cst.KindTry:
		return l.tryStmt(n)
	case cst.KindThrow:
		return l.throwStmt(n)
	case cst.KindRethrow:
		return &ast.RethrowStmt{Base: l.base(n.Span)}
	case cst.KindAssert:
		return &ast.AssertStmt{Base: l.base(n.Span), X: l.expr(n.Child(0))}
	case cst.KindBreak:
		return &ast.BreakStmt{Base: l.base(n.Span), Label: n.Child(0).Text()}
	case cst.KindContinue:
		return &ast.ContinueStmt{Base: l.base(n.Span), Label: n.Child(0).Text()}
	case cst.KindReturn:
		return &ast.ReturnStmt{Base: l.base(n.Span), X: l.optExpr(n.Child(0))}
	case cst.KindInclude:
		return l.includeStmt(n)
	case cst.KindImport:
		return l.importStmt(n)
	case cst.KindProperty:
		return l.property(n)
	case cst.KindFunctionDecl:
		return l.functionDecl(n)
	case cst.KindComponentDecl:
		return l.classDecl(n)
	case cst.KindScriptComponent:
		return l.scriptComponent(n)
	}
	l.unimplemented("statement "+n.Kind.String(), n.Span)
	return nil
}

func (l *lowerer) optExpr(n *cst.Node) ast.Expr {
	if n == nil || n.Kind == cst.KindEmpty {
		return nil
	}
	return l.expr(n)
}

func (l *lowerer) ifStmt(n *cst.Node) *ast.IfStmt {
	st := &ast.IfStmt{
		Base: l.base(n.Span),
		Cond: l.expr(n.Child(0)),
		Then: l.block(n.Child(1)),
	}
	if els := n.Child(2); els != nil {
		st.Else = l.block(els)
	}
	return st
}

func (l *lowerer) switchStmt(n *cst.Node) *ast.SwitchStmt {
	st := &ast.SwitchStmt{Base: l.base(n.Span), Subject: l.expr(n.Child(0))}
	for _, c := range n.OfKind(cst.KindCase) {
		sc := &ast.SwitchCase{Base: l.base(c.Span)}
		body := c.FirstOfKind(cst.KindBlock)
		if c.Value != "default" {
			sc.Value = l.expr(c.Child(0))
		}
		sc.Body = l.block(body)
		st.Cases = append(st.Cases, sc)
	}
	return st
}

func (l *lowerer) tryStmt(n *cst.Node) *ast.TryStmt {
	st := &ast.TryStmt{Base: l.base(n.Span), Body: l.block(n.Child(0))}
	for _, c := range n.Children[1:] {
		switch c.Kind {
		case cst.KindCatch:
			st.Catches = append(st.Catches, l.catchClause(c))
		case cst.KindFinally:
			st.Finally = l.block(c.Child(0))
		}
	}
	return st
}

func (l *lowerer) catchClause(n *cst.Node) *ast.CatchClause {
	cc := &ast.CatchClause{Base: l.base(n.Span)}
	types := n.FirstOfKind(cst.KindCatchTypes)
	for _, t := range types.Children {
		cc.Types = append(cc.Types, l.expr(t))
	}
	if len(cc.Types) == 0 {
		cc.Types = []ast.Expr{&ast.FQN{Base: ast.Synthetic(types.Span), Value: "any"}}
	}
	if id := n.FirstOfKind(cst.KindIdent); id != nil {
		cc.Var = &ast.Identifier{Base: l.base(id.Span), Name: id.Text()}
	}
	cc.Body = l.block(n.FirstOfKind(cst.KindBlock))
	return cc
}

// throwStmt: `throw expr;` or `throw(type=..., message=...)`.
func (l *lowerer) throwStmt(n *cst.Node) *ast.ThrowStmt {
	st := &ast.ThrowStmt{Base: l.base(n.Span)}
	arg := n.Child(0)
	if arg == nil {
		return st
	}
	if arg.Kind != cst.KindArgs {
		st.X = l.expr(arg)
		return st
	}
	for _, a := range l.args(arg) {
		name := ""
		switch k := a.Name.(type) {
		case *ast.Identifier:
			name = k.Name
		case *ast.StringLit:
			name = k.Value
		}
		switch strings.ToLower(name) {
		case "object":
			st.X = a.Value
		case "type":
			st.Type = a.Value
		case "message":
			st.Message = a.Value
		case "detail":
			st.Detail = a.Value
		case "errorcode":
			st.ErrorCode = a.Value
		case "extendedinfo":
			st.ExtendedInfo = a.Value
		case "":
			// positional: the thrown object or message
			if st.X == nil {
				st.X = a.Value
			}
		default:
			l.report(diag.TagAttributeShape, a.Span(), "Unknown throw attribute ["+name+"]")
		}
	}
	return st
}

// includeStmt: `include "x";` or `include template="x";`.
func (l *lowerer) includeStmt(n *cst.Node) *ast.IncludeStmt {
	st := &ast.IncludeStmt{Base: l.base(n.Span)}
	if n.Child(0) != nil && n.Child(0).Kind != cst.KindPostAnnotation {
		st.Template = l.expr(n.Child(0))
		return st
	}
	attrs := l.postAnnotations(n.OfKind(cst.KindPostAnnotation))
	st.Template = l.findAnnotation(attrs, "template", attrRequired, nil, "include", n.Span)
	return st
}

func (l *lowerer) importStmt(n *cst.Node) *ast.ImportStmt {
	st := &ast.ImportStmt{Base: l.base(n.Span), Prefix: n.Value}
	if name := n.Child(0); name != nil && name.Kind != cst.KindIdent {
		st.Name = l.expr(name)
	} else {
		st.Name = l.null(n.Span.EndPoint())
	}
	if alias := n.FirstOfKind(cst.KindIdent); alias != nil {
		st.Alias = alias.Text()
	}
	return st
}
