package lower

import (
	"fmt"
	"strings"

	"cfparse/internal/ast"
	"cfparse/internal/cst"
	"cfparse/internal/diag"
)

// tagStmt lowers a flat tag. Tags with a fixed meaning map to statements;
// the rest become generic components.
func (l *lowerer) tagStmt(n *cst.Node) []ast.Stmt {
	switch n.Value {
	case "set":
		return []ast.Stmt{&ast.ExprStmt{Base: l.base(n.Span), X: l.tagExpr(n, true)}}
	case "return":
		return []ast.Stmt{&ast.ReturnStmt{Base: l.base(n.Span), X: l.tagExpr(n, false)}}
	case "throw":
		return []ast.Stmt{l.throwTag(n)}
	case "rethrow":
		return []ast.Stmt{&ast.RethrowStmt{Base: l.base(n.Span)}}
	case "break":
		return []ast.Stmt{&ast.BreakStmt{Base: l.base(n.Span)}}
	case "continue":
		return []ast.Stmt{&ast.ContinueStmt{Base: l.base(n.Span)}}
	case "argument":
		return []ast.Stmt{l.argumentTag(n)}
	case "property":
		return []ast.Stmt{&ast.PropertyDecl{Base: l.base(n.Span), Annotations: l.attributes(n)}}
	case "import":
		return []ast.Stmt{l.importTag(n)}
	}
	return []ast.Stmt{l.genericTag(n)}
}

func (l *lowerer) tagBlock(n *cst.Node) ast.Stmt {
	switch n.Value {
	case "if":
		return l.ifTag(n)
	case "try":
		return l.tryTag(n)
	case "switch":
		return l.switchTag(n)
	case "function":
		return l.functionTag(n)
	case "component", "interface":
		return l.tagClass(n)
	case "while":
		return l.whileTag(n)
	case "loop":
		if _, ok := l.attrWindow(n, "condition"); ok {
			return l.whileTag(n)
		}
	case "script":
		// узел покрывает только тело; без тела остаётся весь тег
		island := n.FirstOfKind(cst.KindScriptIsland)
		if island == nil {
			return &ast.ScriptIslandStmt{Base: l.base(n.Span), Body: []ast.Stmt{}}
		}
		return &ast.ScriptIslandStmt{
			Base: l.base(island.Span),
			Body: l.reparseScript(island.Span.Start, island.Span.End),
		}
	}
	return l.blockComponent(n)
}

// tagExpr re-parses the raw expression of <cfset>, <cfif> or <cfreturn>.
// A missing expression is a NullLit, reported only when required.
func (l *lowerer) tagExpr(n *cst.Node, required bool) ast.Expr {
	te := n.FirstOfKind(cst.KindTagExpr)
	if te == nil {
		if required {
			l.report(diag.SynExpectExpression, n.Span, fmt.Sprintf("Expected expression in [cf%s]", n.Value))
		}
		return l.null(n.Span.EndPoint())
	}
	return l.reparseExpr(te.Span.Start, te.Span.End)
}

// ifTag lowers <cfif>/<cfelseif>/<cfelse> into nested IfStmts: each
// elseif is the single statement of the previous else branch.
func (l *lowerer) ifTag(n *cst.Node) *ast.IfStmt {
	st := &ast.IfStmt{Base: l.base(n.Span), Cond: l.tagExpr(n, true), Then: l.body(n)}
	type branch struct {
		node *cst.Node
		cond ast.Expr
		body []ast.Stmt
	}
	var branches []branch
	for _, b := range n.OfKind(cst.KindTagBlock) {
		br := branch{node: b}
		if b.Value == "elseif" {
			br.cond = l.tagExpr(b, true)
		}
		br.body = l.body(b)
		branches = append(branches, br)
	}
	var els []ast.Stmt
	for i := len(branches) - 1; i >= 0; i-- {
		br := branches[i]
		if br.cond == nil {
			els = br.body
			continue
		}
		last := branches[len(branches)-1].node.Span
		els = []ast.Stmt{&ast.IfStmt{
			Base: l.base(br.node.Span.Cover(last)),
			Cond: br.cond,
			Then: br.body,
			Else: els,
		}}
	}
	st.Else = els
	return st
}

// tryTag: each <cfcatch> matches its `type` attribute, `any` by default.
func (l *lowerer) tryTag(n *cst.Node) *ast.TryStmt {
	st := &ast.TryStmt{Base: l.base(n.Span), Body: l.body(n)}
	for _, b := range n.OfKind(cst.KindTagBlock) {
		switch b.Value {
		case "catch":
			attrs := l.attributes(b)
			st.Catches = append(st.Catches, &ast.CatchClause{
				Base:  l.base(b.Span),
				Types: []ast.Expr{l.catchType(attrs, b)},
				Var:   &ast.Identifier{Base: ast.Synthetic(b.Span), Name: "cfcatch"},
				Body:  l.body(b),
			})
		case "finally":
			st.Finally = l.body(b)
		}
	}
	return st
}

func (l *lowerer) catchType(attrs []*ast.Annotation, b *cst.Node) ast.Expr {
	a, ok := lookupAnnotation(attrs, "type")
	if !ok {
		return &ast.FQN{Base: ast.Synthetic(b.Span), Value: "any"}
	}
	if s, ok := a.Value.(*ast.StringLit); ok {
		value := strings.TrimSpace(s.Value)
		if value == "" {
			value = "any"
		}
		return &ast.FQN{Base: s.Base, Value: value}
	}
	return a.Value
}

// switchTag: the body may only hold <cfcase>/<cfdefaultcase> and blank
// text. Every case ends with an implicit break.
func (l *lowerer) switchTag(n *cst.Node) *ast.SwitchStmt {
	attrs := l.attributes(n)
	st := &ast.SwitchStmt{
		Base:    l.base(n.Span),
		Subject: l.findAnnotation(attrs, "expression", attrRequired, nil, "switch", n.Span),
	}
	body := n.FirstOfKind(cst.KindTagBody)
	if body == nil {
		return st
	}
	for _, c := range body.Children {
		switch {
		case c.Kind == cst.KindTagBlock && (c.Value == "case" || c.Value == "defaultcase"):
			st.Cases = append(st.Cases, l.caseTag(c))
		case c.Kind == cst.KindText && blankText(c), c.Kind == cst.KindError:
		default:
			l.report(diag.TagSwitchBody, c.Span, "Switch body can only contain case statements - "+describeMarkup(c))
		}
	}
	return st
}

func (l *lowerer) caseTag(c *cst.Node) *ast.SwitchCase {
	sc := &ast.SwitchCase{Base: l.base(c.Span)}
	if c.Value == "case" {
		attrs := l.attributes(c)
		sc.Value = l.findAnnotation(attrs, "value", attrRequired, nil, "case", c.Span)
		sc.Delimiter = l.findAnnotation(attrs, "delimiters", attrOptional, nil, "case", c.Span)
	}
	sc.Body = append(l.body(c), &ast.BreakStmt{Base: ast.Synthetic(c.Span.EndPoint())})
	return sc
}

func blankText(n *cst.Node) bool {
	for _, c := range n.Children {
		if c.Kind != cst.KindTextPart || strings.TrimSpace(c.Text()) != "" {
			return false
		}
	}
	return true
}

func describeMarkup(n *cst.Node) string {
	switch n.Kind {
	case cst.KindTagStmt, cst.KindTagBlock:
		return "cf" + n.Value
	case cst.KindTagClose:
		return "/cf" + n.Value
	}
	return strings.ToLower(n.Kind.String())
}

// functionTag lowers <cffunction>. Leading <cfargument> tags become the
// parameter list; other attributes are annotations.
func (l *lowerer) functionTag(n *cst.Node) *ast.FunctionDecl {
	attrs := l.attributes(n)
	fn := &ast.FunctionDecl{
		Base:        l.base(n.Span),
		Name:        l.stringValue(attrs, "name", attrRequired, false, "", "function", n.Span),
		Access:      ast.AccessPublic,
		Annotations: without(attrs, "name", "access", "returntype"),
		Args:        []*ast.ArgumentDecl{},
		Body:        []ast.Stmt{},
	}
	if access := l.stringValue(attrs, "access", attrOptional, false, "public", "function", n.Span); access != "" {
		if acc, ok := ast.ParseAccess(strings.ToLower(access)); ok {
			fn.Access = acc
		} else {
			a, _ := lookupAnnotation(attrs, "access")
			l.report(diag.TagAttributeShape, a.Span(), fmt.Sprintf("Attribute [access] has an unknown value [%s]", access))
		}
	}
	fn.ReturnType = &ast.ReturnType{Base: ast.Synthetic(n.Span), Type: defaultReturnType}
	if a, ok := lookupAnnotation(attrs, "returntype"); ok {
		if rt := l.stringValue(attrs, "returntype", attrOptional, false, defaultReturnType, "function", n.Span); rt != "" {
			fn.ReturnType = &ast.ReturnType{Base: ast.At(a.Value.Span(), a.Value.SourceText()), Type: rt}
		}
	}
	for _, s := range l.body(n) {
		if arg, ok := s.(*ast.ArgumentDecl); ok {
			fn.Args = append(fn.Args, arg)
			continue
		}
		fn.Body = append(fn.Body, s)
	}
	return fn
}

func (l *lowerer) argumentTag(n *cst.Node) *ast.ArgumentDecl {
	attrs := l.attributes(n)
	return &ast.ArgumentDecl{
		Base:        l.base(n.Span),
		Name:        l.stringValue(attrs, "name", attrRequired, false, "", "argument", n.Span),
		Type:        l.stringValue(attrs, "type", attrOptional, false, defaultArgType, "argument", n.Span),
		Required:    truthy(l.findAnnotation(attrs, "required", attrOptional, nil, "argument", n.Span)),
		Default:     l.findAnnotation(attrs, "default", attrOptional, nil, "argument", n.Span),
		Annotations: without(attrs, "name", "type", "required", "default"),
	}
}

func (l *lowerer) throwTag(n *cst.Node) *ast.ThrowStmt {
	attrs := l.attributes(n)
	opt := func(name string) ast.Expr {
		return l.findAnnotation(attrs, name, attrOptional, nil, "throw", n.Span)
	}
	return &ast.ThrowStmt{
		Base:         l.base(n.Span),
		X:            opt("object"),
		Type:         opt("type"),
		Message:      opt("message"),
		Detail:       opt("detail"),
		ErrorCode:    opt("errorcode"),
		ExtendedInfo: opt("extendedinfo"),
	}
}

// importTag: <cfimport name="a.b.C" alias="C">, <cfimport prefix="x"
// taglib="/tags"> or <cfimport module="m">.
func (l *lowerer) importTag(n *cst.Node) *ast.ImportStmt {
	attrs := l.attributes(n)
	st := &ast.ImportStmt{
		Base:   l.base(n.Span),
		Prefix: l.stringValue(attrs, "prefix", attrOptional, true, "", "import", n.Span),
		Alias:  l.stringValue(attrs, "alias", attrOptional, true, "", "import", n.Span),
	}
	for _, key := range []string{"name", "taglib", "module"} {
		a, ok := lookupAnnotation(attrs, key)
		if !ok {
			continue
		}
		if s, isLit := a.Value.(*ast.StringLit); isLit && key == "name" {
			st.Name = &ast.FQN{Base: s.Base, Value: s.Value}
		} else {
			st.Name = a.Value
		}
		return st
	}
	st.Name = l.findAnnotation(attrs, "name", attrRequired, nil, "import", n.Span)
	return st
}

// tagClass lowers <cfcomponent>/<cfinterface>; <cfproperty> tags in the
// body become the class properties.
func (l *lowerer) tagClass(n *cst.Node) *ast.ClassDecl {
	cd := &ast.ClassDecl{
		Base:        l.base(n.Span),
		Interface:   n.Value == "interface",
		Annotations: l.attributes(n),
	}
	cd.Body, cd.Properties = splitProperties(l.body(n))
	return cd
}

// whileTag lowers <cfwhile condition> and <cfloop condition>; the condition
// text is a script expression.
func (l *lowerer) whileTag(n *cst.Node) *ast.WhileStmt {
	st := &ast.WhileStmt{Base: l.base(n.Span)}
	if window, ok := l.attrWindow(n, "condition"); ok {
		st.Cond = l.reparseExpr(window.Start, window.End)
	} else {
		l.report(diag.TagMissingAttribute, n.Span, fmt.Sprintf("Missing condition attribute on %s component", n.Value))
		st.Cond = l.null(n.Span.EndPoint())
	}
	st.Body = l.body(n)
	return st
}
