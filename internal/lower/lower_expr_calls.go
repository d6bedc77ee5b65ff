package lower

import (
	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
)

// call picks the invocation form from the callee shape: a bare name, a
// member access, or anything else.
func (l *lowerer) call(n *cst.Node) ast.Expr {
	callee, argList := n.Child(0), n.Child(1)
	args := l.args(argList)
	switch callee.Kind {
	case cst.KindIdent:
		return &ast.FunctionInvocation{Base: l.base(n.Span), Name: callee.Text(), Args: args}
	case cst.KindDot:
		name := callee.Child(1)
		return &ast.MethodInvocation{
			Base: l.base(n.Span),
			Obj:  l.expr(callee.Child(0)),
			Name: &ast.Identifier{Base: l.base(name.Span), Name: name.Text()},
			Args: args,
			Safe: callee.Has(cst.FlagSafe),
		}
	}
	return &ast.ExpressionInvocation{Base: l.base(n.Span), Callee: l.expr(callee), Args: args}
}

// args lowers an argument list. All arguments must be named or all
// positional; the first argument that breaks the pattern is reported.
func (l *lowerer) args(n *cst.Node) []*ast.Argument {
	out := []*ast.Argument{}
	if n == nil {
		return out
	}
	mixed := false
	for i, a := range n.Children {
		arg := &ast.Argument{Base: l.base(a.Span)}
		if a.Has(cst.FlagNamed) {
			name := a.Child(0)
			if name.Kind == cst.KindIdent {
				arg.Name = &ast.Identifier{Base: l.base(name.Span), Name: name.Text()}
			} else {
				arg.Name = l.expr(name)
			}
			arg.Value = l.expr(a.Child(1))
		} else {
			arg.Value = l.expr(a.Child(0))
		}
		if i > 0 && !mixed && a.Has(cst.FlagNamed) != n.Children[0].Has(cst.FlagNamed) {
			mixed = true
			l.report(diag.LowMixedArguments, a.Span, "You cannot mix named and positional arguments")
		}
		out = append(out, arg)
	}
	return out
}

// closure lowers `function(...) {}`.
func (l *lowerer) closure(n *cst.Node) *ast.Closure {
	return &ast.Closure{
		Base:        l.base(n.Span),
		Args:        l.params(n.FirstOfKind(cst.KindParams)),
		Annotations: l.postAnnotations(n.OfKind(cst.KindPostAnnotation)),
		Body:        l.block(n.FirstOfKind(cst.KindBlock)),
	}
}

// lambda lowers arrow functions: `=>` keeps closure semantics, `->` is a
// Lambda. An expression body is an implicit return.
func (l *lowerer) lambda(n *cst.Node) ast.Expr {
	params := l.params(n.Child(0))
	var body []ast.Stmt
	switch b := n.Child(1); {
	case b == nil:
		body = []ast.Stmt{}
	case b.Kind == cst.KindBlock:
		body = l.block(b)
	default:
		body = []ast.Stmt{&ast.ReturnStmt{Base: l.base(b.Span), X: l.expr(b)}}
	}
	if n.Value == "->" {
		return &ast.Lambda{Base: l.base(n.Span), Args: params, Body: body}
	}
	return &ast.Closure{Base: l.base(n.Span), Args: params, Body: body}
}
