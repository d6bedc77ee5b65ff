package lower

import (
	"strings"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
	"cfparse/internal/token"
)

// operator spellings produced by the parser, keyed back to the AST enums
var (
	binaryOps     = map[string]ast.BinaryOperator{}
	comparisonOps = map[string]ast.ComparisonOperator{}
	unaryOps      = map[string]ast.UnaryOperator{}
	assignOps     = map[string]ast.AssignOperator{}
)

func init() {
	for op := ast.OpPlus; op <= ast.OpInstanceOf; op++ {
		binaryOps[op.String()] = op
	}
	for op := ast.CmpEqual; op <= ast.CmpTEqual; op++ {
		comparisonOps[op.String()] = op
	}
	for op := ast.UnPrePlusPlus; op <= ast.UnNot; op++ {
		unaryOps[op.String()] = op
	}
	for op := ast.AssignEqual; op <= ast.AssignConcat; op++ {
		assignOps[op.String()] = op
	}
}

// expr lowers one expression node. A missing or broken operand becomes a
// NullLit; the parser already reported why.
func (l *lowerer) expr(n *cst.Node) ast.Expr {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case cst.KindError, cst.KindEmpty:
		return l.null(n.Span)
	case cst.KindInt:
		return &ast.IntegerLit{Base: l.base(n.Span), Value: n.Text()}
	case cst.KindFloat:
		return &ast.DecimalLit{Base: l.base(n.Span), Value: n.Text()}
	case cst.KindBool:
		return &ast.BooleanLit{Base: l.base(n.Span), Value: strings.EqualFold(n.Text(), "true")}
	case cst.KindNull:
		return &ast.NullLit{Base: l.base(n.Span)}
	case cst.KindIdent:
		return l.ident(n)
	case cst.KindString:
		return l.stringLit(n)
	case cst.KindHashExpr:
		// `#expr#` outside a string is the bare expression
		return l.expr(n.Child(0))
	case cst.KindParen:
		return &ast.Parenthesis{Base: l.base(n.Span), X: l.expr(n.Child(0))}
	case cst.KindArray:
		arr := &ast.ArrayLit{Base: l.base(n.Span), Items: []ast.Expr{}}
		for _, c := range n.Children {
			arr.Items = append(arr.Items, l.expr(c))
		}
		return arr
	case cst.KindStruct:
		return l.structLit(n)
	case cst.KindBinary:
		return l.binary(n)
	case cst.KindUnary:
		return &ast.UnaryOp{Base: l.base(n.Span), Op: unaryOps[n.Value], X: l.expr(n.Child(0))}
	case cst.KindPostfix:
		op := ast.UnPostPlusPlus
		if n.Value == "--" {
			op = ast.UnPostMinusMinus
		}
		return &ast.UnaryOp{Base: l.base(n.Span), Op: op, X: l.expr(n.Child(0))}
	case cst.KindTernary:
		return &ast.TernaryOp{
			Base: l.base(n.Span),
			Cond: l.expr(n.Child(0)),
			Then: l.expr(n.Child(1)),
			Else: l.expr(n.Child(2)),
		}
	case cst.KindAssign:
		return l.assignment(n)
	case cst.KindVarDecl:
		return l.expr(n.Child(0))
	case cst.KindDot:
		return l.dotAccess(n)
	case cst.KindIndex:
		return &ast.ArrayAccess{
			Base:    l.base(n.Span),
			Context: l.expr(n.Child(0)),
			Index:   l.expr(n.Child(1)),
			Safe:    n.Has(cst.FlagSafe),
		}
	case cst.KindCall:
		return l.call(n)
	case cst.KindNew:
		return l.newOp(n)
	case cst.KindFQN, cst.KindTypeRef:
		return &ast.FQN{Base: l.base(n.Span), Value: n.Value}
	case cst.KindClosure:
		return l.closure(n)
	case cst.KindLambda:
		return l.lambda(n)
	}
	l.unimplemented("expression "+n.Kind.String(), n.Span)
	return nil
}

// ident lowers a bare name; the built-in scope names become ScopeRefs.
func (l *lowerer) ident(n *cst.Node) ast.Expr {
	name := n.Text()
	if token.IsScope(name) {
		return &ast.ScopeRef{Base: l.base(n.Span), Name: strings.ToLower(name)}
	}
	return &ast.Identifier{Base: l.base(n.Span), Name: name}
}

// stringLit lowers a quoted string. Without `#expr#` parts it is a plain
// StringLit, otherwise a StringInterpolation with parts in source order.
func (l *lowerer) stringLit(n *cst.Node) ast.Expr {
	quote := byte('"')
	if n.Tok != nil && n.Tok.Text != "" {
		quote = n.Tok.Text[0]
	}
	if n.FirstOfKind(cst.KindInterp) == nil {
		var b strings.Builder
		for _, part := range n.Children {
			b.WriteString(part.Text())
		}
		return &ast.StringLit{Base: l.base(n.Span), Value: unescape(b.String(), quote)}
	}
	interp := &ast.StringInterpolation{Base: l.base(n.Span)}
	for _, part := range n.Children {
		if part.Kind == cst.KindInterp {
			interp.Parts = append(interp.Parts, l.expr(part.Child(0)))
			continue
		}
		interp.Parts = append(interp.Parts, &ast.StringLit{Base: l.base(part.Span), Value: unescape(part.Text(), quote)})
	}
	return interp
}

// unescape removes `##` and doubled-quote escapes.
func unescape(s string, quote byte) string {
	if !strings.Contains(s, "##") && strings.IndexByte(s, quote) < 0 {
		return s
	}
	q := string(quote)
	s = strings.ReplaceAll(s, "##", "#")
	return strings.ReplaceAll(s, q+q, q)
}

func (l *lowerer) structLit(n *cst.Node) *ast.StructLit {
	st := &ast.StructLit{Base: l.base(n.Span), Entries: []ast.StructEntry{}}
	if n.Has(cst.FlagOrdered) {
		st.Kind = ast.StructOrdered
	}
	for _, e := range n.Children {
		key := e.Child(0)
		var k ast.Expr
		if key.Kind == cst.KindIdent {
			// keys are names, never scope references
			k = &ast.Identifier{Base: l.base(key.Span), Name: key.Text()}
		} else {
			k = l.expr(key)
		}
		st.Entries = append(st.Entries, ast.StructEntry{Key: k, Value: l.expr(e.Child(1))})
	}
	return st
}

func (l *lowerer) binary(n *cst.Node) ast.Expr {
	if n.Value == "&" {
		concat := &ast.StringConcat{Base: l.base(n.Span)}
		l.flattenConcat(n, concat)
		return concat
	}
	left, right := l.expr(n.Child(0)), l.expr(n.Child(1))
	if op, ok := comparisonOps[n.Value]; ok {
		return &ast.ComparisonOp{Base: l.base(n.Span), Op: op, Left: left, Right: right}
	}
	op, ok := binaryOps[n.Value]
	if !ok {
		l.unimplemented("operator "+n.Value, n.Span)
	}
	return &ast.BinaryOp{Base: l.base(n.Span), Op: op, Left: left, Right: right}
}

// flattenConcat collects every operand of an `&` chain in order. A
// parenthesized chain stays a single operand.
func (l *lowerer) flattenConcat(n *cst.Node, into *ast.StringConcat) {
	for _, c := range n.Children {
		if c.Kind == cst.KindBinary && c.Value == "&" {
			l.flattenConcat(c, into)
			continue
		}
		into.Parts = append(into.Parts, l.expr(c))
	}
}

func (l *lowerer) assignment(n *cst.Node) *ast.Assignment {
	as := &ast.Assignment{
		Base:  l.base(n.Span),
		Op:    assignOps[n.Value],
		Left:  l.expr(n.Child(0)),
		Right: l.expr(n.Child(1)),
	}
	if n.Has(cst.FlagVar) {
		as.Modifiers = []ast.AssignModifier{ast.ModifierVar}
	}
	switch as.Left.(type) {
	case *ast.Identifier, *ast.ScopeRef, *ast.DotAccess, *ast.ArrayAccess, *ast.NullLit:
	case *ast.StringLit, *ast.StringInterpolation:
		// `"#name#" = value` assigns a dynamic variable name
	default:
		l.report(diag.LowInvalidTarget, as.Left.Span(), "Invalid assignment target ["+as.Left.SourceText()+"]")
	}
	return as
}

func (l *lowerer) dotAccess(n *cst.Node) *ast.DotAccess {
	name := n.Child(1)
	var access ast.Expr
	if name.Tok != nil && name.Tok.Kind == token.IntLit {
		access = &ast.IntegerLit{Base: l.base(name.Span), Value: name.Text()}
	} else {
		access = &ast.Identifier{Base: l.base(name.Span), Name: name.Text()}
	}
	return &ast.DotAccess{
		Base:    l.base(n.Span),
		Context: l.expr(n.Child(0)),
		Access:  access,
		Safe:    n.Has(cst.FlagSafe),
	}
}

func (l *lowerer) newOp(n *cst.Node) *ast.NewOp {
	return &ast.NewOp{
		Base:   l.base(n.Span),
		Prefix: n.Value,
		Class:  l.expr(n.Child(0)),
		Args:   l.args(n.Child(1)),
	}
}
