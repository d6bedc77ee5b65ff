package lower

import (
	"fmt"

	"cfparse/internal/ast"
	"cfparse/internal/diag"
	"cfparse/internal/parser"
	"cfparse/internal/source"
)

// nested runs fn in a fresh lowerer that reports into a private bag. The
// bag is replayed into l afterwards; a fatal error inside fn becomes an
// issue. Windows are taken from the same file, so every span reported by
// the nested run is already absolute.
func (l *lowerer) nested(window source.Span, fn func(sub *lowerer, opts parser.Options) ast.Node) (ast.Node, *diag.Bag) {
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	sub := &lowerer{file: l.file, reg: l.reg, rep: rep}

	var out ast.Node
	err := func() (err error) {
		defer recoverFatal(&err)
		out = fn(sub, parser.Options{Reporter: rep})
		return nil
	}()
	for _, d := range bag.Items() {
		if l.rep != nil {
			l.rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	if err != nil {
		l.report(diag.LowNestedFatal, window, fmt.Sprintf("Unsupported construct in embedded code: %v", err))
		return nil, bag
	}
	return out, bag
}

// reparseExpr parses file bytes [start, end) as one script expression. Any
// issue in the window replaces the expression with a NullLit.
func (l *lowerer) reparseExpr(start, end uint32) ast.Expr {
	window := l.span(start, end)
	out, bag := l.nested(window, func(sub *lowerer, opts parser.Options) ast.Node {
		res := parser.ParseScriptExpression(sub.file, start, end, opts)
		return sub.expr(res.Root)
	})
	expr, ok := out.(ast.Expr)
	if !ok || bag.Len() > 0 {
		return l.null(window)
	}
	return expr
}

// reparseScript parses file bytes [start, end) as a script unit and returns
// its statements. A fatal error leaves a NullLit placeholder statement.
func (l *lowerer) reparseScript(start, end uint32) []ast.Stmt {
	window := l.span(start, end)
	out, _ := l.nested(window, func(sub *lowerer, opts parser.Options) ast.Node {
		res := parser.ParseScript(sub.file, start, end, opts)
		return sub.scriptRoot(res.Root)
	})
	switch root := out.(type) {
	case *ast.Script:
		return root.Statements
	case nil:
		placeholder := l.null(window)
		return []ast.Stmt{&ast.ExprStmt{Base: ast.Synthetic(window), X: placeholder}}
	default:
		l.report(diag.LowUnexpectedRoot, window,
			fmt.Sprintf("Unexpected root node type [%s] in script island.", ast.KindName(root)))
		return []ast.Stmt{}
	}
}
